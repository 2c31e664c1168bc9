package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"attendance-tracker/internal/models"
)

const EmployeeCollection = "employees"

var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}},
		Options: options.Index().SetName("uniq_employeeId").SetUnique(true),
	},
}

// MongoStore keeps one document per employee with submissions embedded as
// an array.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore binds to the employees collection of dbName and makes sure
// the unique identity index exists.
func NewMongoStore(ctx context.Context, client *mongo.Client, dbName string) (*MongoStore, error) {
	coll := client.Database(dbName).Collection(EmployeeCollection)
	if _, err := coll.Indexes().CreateMany(ctx, EmployeeIndexes); err != nil {
		return nil, mongoStoreErr("create indexes", err)
	}
	return &MongoStore{client: client, coll: coll, now: time.Now}, nil
}

func (s *MongoStore) FindByIdentity(ctx context.Context, employeeID string) (*models.Employee, error) {
	var emp models.Employee
	err := s.coll.FindOne(ctx, identityFilter(employeeID)).Decode(&emp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrEmployeeNotFound
		}
		return nil, mongoStoreErr("find employee", err)
	}
	return normalizeDoc(&emp), nil
}

func (s *MongoStore) Create(ctx context.Context, emp models.Employee) (*models.Employee, error) {
	now := s.now().UTC()
	emp.Submissions = []string{}
	emp.CreatedAt = now
	emp.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, emp); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrDuplicateIdentity
		}
		return nil, mongoStoreErr("insert employee", err)
	}
	return &emp, nil
}

func (s *MongoStore) Upsert(ctx context.Context, emp models.Employee) (*models.Employee, bool, error) {
	opts := options.Update().SetUpsert(true)
	res, err := s.coll.UpdateOne(ctx, identityFilter(emp.EmployeeID), upsertUpdate(emp, s.now().UTC()), opts)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// Two upserts raced on the same new id; the retry takes the update path.
		res, err = s.coll.UpdateOne(ctx, identityFilter(emp.EmployeeID), upsertUpdate(emp, s.now().UTC()), opts)
	}
	if err != nil {
		return nil, false, mongoStoreErr("upsert employee", err)
	}

	saved, err := s.FindByIdentity(ctx, emp.EmployeeID)
	if err != nil {
		return nil, false, err
	}
	return saved, res.UpsertedCount == 1, nil
}

func (s *MongoStore) ListAll(ctx context.Context) ([]models.Employee, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, mongoStoreErr("list employees", err)
	}
	list := make([]models.Employee, 0)
	if err := cur.All(ctx, &list); err != nil {
		return nil, mongoStoreErr("decode employees", err)
	}
	for i := range list {
		normalizeDoc(&list[i])
	}
	return list, nil
}

func (s *MongoStore) AppendSubmission(ctx context.Context, employeeID, date string) (*models.Employee, error) {
	var emp models.Employee
	err := s.coll.FindOneAndUpdate(ctx,
		submissionFilter(employeeID, date),
		submissionUpdate(date, s.now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&emp)
	if err == nil {
		return normalizeDoc(&emp), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, mongoStoreErr("append submission", err)
	}

	n, err := s.coll.CountDocuments(ctx, identityFilter(employeeID), options.Count().SetLimit(1))
	if err != nil {
		return nil, mongoStoreErr("check employee", err)
	}
	if n == 0 {
		return nil, models.ErrEmployeeNotFound
	}
	return nil, models.ErrDuplicateSubmission
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return mongoStoreErr("ping", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func identityFilter(employeeID string) bson.D {
	return bson.D{{Key: "employeeId", Value: employeeID}}
}

// submissionFilter only matches the employee while date is absent from its
// submissions, which makes the push below a conditional append.
func submissionFilter(employeeID, date string) bson.D {
	return bson.D{
		{Key: "employeeId", Value: employeeID},
		{Key: "submissions", Value: bson.D{{Key: "$ne", Value: date}}},
	}
}

func submissionUpdate(date string, now time.Time) bson.D {
	return bson.D{
		{Key: "$push", Value: bson.D{{Key: "submissions", Value: date}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
}

func upsertUpdate(emp models.Employee, now time.Time) bson.D {
	return bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "mailId", Value: emp.MailID},
			{Key: "name", Value: emp.Name},
			{Key: "team", Value: emp.Team},
			{Key: "mobileNumber", Value: emp.MobileNumber},
			{Key: "updatedAt", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "submissions", Value: bson.A{}},
			{Key: "createdAt", Value: now},
		}},
	}
}

func normalizeDoc(emp *models.Employee) *models.Employee {
	if emp.Submissions == nil {
		emp.Submissions = []string{}
	}
	return emp
}

func mongoStoreErr(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", models.ErrStorageUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
