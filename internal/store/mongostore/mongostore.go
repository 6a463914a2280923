// Package mongostore implements store.Store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/justsurfingit/dream-finder/internal/models"
	"github.com/justsurfingit/dream-finder/internal/query"
	"github.com/justsurfingit/dream-finder/internal/store"
)

var _ store.Store = (*Store)(nil)

const (
	colJobs         = "jobs"
	colUsers        = "users"
	colCompanies    = "companies"
	colApplications = "applications"
	colBookmarks    = "bookmarks"
	colFeedback     = "feedback"
	colContacts     = "contacts"
)

// record pairs a model with its ObjectID. Models keep their ID out of the
// document body, so the two never disagree.
type record[T any] struct {
	ID  primitive.ObjectID `bson:"_id,omitempty"`
	Doc T                  `bson:",inline"`
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(client *mongo.Client, database string) *Store {
	return &Store{client: client, db: client.Database(database)}
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique keys the duplicate checks rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	specs := []struct {
		collection string
		keys       bson.D
	}{
		{colUsers, bson.D{{Key: "email", Value: 1}}},
		{colCompanies, bson.D{{Key: "email", Value: 1}}},
		{colApplications, bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_email", Value: 1}}},
		{colBookmarks, bson.D{{Key: "user", Value: 1}, {Key: "job_id", Value: 1}}},
	}
	for _, spec := range specs {
		_, err := s.db.Collection(spec.collection).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.keys, Options: unique})
		if err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
	}
	_, err := s.db.Collection(colJobs).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "posted_date", Value: -1}}},
		{Keys: bson.D{{Key: "viewCount", Value: -1}}},
		{Keys: bson.D{{Key: "company_email", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create job indexes: %w", err)
	}
	return nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	}
	return err
}

func insert[T any](ctx context.Context, col *mongo.Collection, doc T) (string, error) {
	rec := record[T]{ID: primitive.NewObjectID(), Doc: doc}
	if _, err := col.InsertOne(ctx, rec); err != nil {
		return "", translate(err)
	}
	return rec.ID.Hex(), nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, []string, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, nil, err
	}
	var recs []record[T]
	if err := cur.All(ctx, &recs); err != nil {
		return nil, nil, err
	}
	docs := make([]T, len(recs))
	ids := make([]string, len(recs))
	for i, r := range recs {
		docs[i] = r.Doc
		ids[i] = r.ID.Hex()
	}
	return docs, ids, nil
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any) (*T, string, error) {
	var rec record[T]
	if err := col.FindOne(ctx, filter).Decode(&rec); err != nil {
		return nil, "", translate(err)
	}
	return &rec.Doc, rec.ID.Hex(), nil
}

// Jobs

func (s *Store) CountJobs(ctx context.Context, p query.Predicate) (int64, error) {
	n, err := s.db.Collection(colJobs).CountDocuments(ctx, jobFilter(p))
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (s *Store) FindJobs(ctx context.Context, p query.Predicate, r query.Ranking) ([]models.Job, error) {
	jobs, ids, err := findAll[models.Job](ctx, s.db.Collection(colJobs), jobFilter(p), findOptions(r))
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	for i := range jobs {
		jobs[i].ID = ids[i]
	}
	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	job, hex, err := findOne[models.Job](ctx, s.db.Collection(colJobs), bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	job.ID = hex
	return job, nil
}

func (s *Store) InsertJob(ctx context.Context, job *models.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	id, err := insert(ctx, s.db.Collection(colJobs), *job)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	job.ID = id
	return nil
}

func (s *Store) DeleteJob(ctx context.Context, id, companyEmail string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(colJobs).DeleteOne(ctx, bson.M{"_id": oid, "company_email": companyEmail})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) IncrementJob(ctx context.Context, id string, c store.Counter) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}
	field := counterField(c)
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{field: 1})
	var out bson.M
	err = s.db.Collection(colJobs).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}}, opts).
		Decode(&out)
	if err != nil {
		return 0, translate(err)
	}
	switch v := out[field].(type) {
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	}
	return 0, fmt.Errorf("increment %s: unexpected type %T", field, out[field])
}

// Users

func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(u.Email)
	id, err := insert(ctx, s.db.Collection(colUsers), *u)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, id, err := findOne[models.User](ctx, s.db.Collection(colUsers), bson.M{"email": strings.ToLower(email)})
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	users, ids, err := findAll[models.User](ctx, s.db.Collection(colUsers), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		users[i].ID = ids[i]
	}
	return users, nil
}

func (s *Store) SetUserRole(ctx context.Context, email string, role models.Role) error {
	res, err := s.db.Collection(colUsers).UpdateOne(ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, email string) error {
	res, err := s.db.Collection(colUsers).DeleteOne(ctx, bson.M{"email": strings.ToLower(email)})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Companies

func (s *Store) UpsertCompany(ctx context.Context, c *models.Company) error {
	col := s.db.Collection(colCompanies)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	set := bson.M{
		"name":        c.Name,
		"logo":        c.Logo,
		"website":     c.Website,
		"location":    c.Location,
		"description": c.Description,
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var rec record[models.Company]
	err := col.FindOneAndUpdate(ctx,
		bson.M{"email": c.Email},
		bson.M{"$set": set, "$setOnInsert": bson.M{"created_at": c.CreatedAt}},
		opts,
	).Decode(&rec)
	if err != nil {
		return fmt.Errorf("upsert company: %w", translate(err))
	}
	*c = rec.Doc
	c.ID = rec.ID.Hex()
	return nil
}

func (s *Store) GetCompanyByEmail(ctx context.Context, email string) (*models.Company, error) {
	c, id, err := findOne[models.Company](ctx, s.db.Collection(colCompanies), bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	companies, ids, err := findAll[models.Company](ctx, s.db.Collection(colCompanies), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	for i := range companies {
		companies[i].ID = ids[i]
	}
	return companies, nil
}

// Applications

func (s *Store) InsertApplication(ctx context.Context, a *models.Application) error {
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	id, err := insert(ctx, s.db.Collection(colApplications), *a)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	a.ID = id
	return nil
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	apps, ids, err := findAll[models.Application](ctx, s.db.Collection(colApplications), bson.M{"applicant_email": email})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	for i := range apps {
		apps[i].ID = ids[i]
	}
	return apps, nil
}

// Bookmarks

func (s *Store) InsertBookmark(ctx context.Context, b *models.Bookmark) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	id, err := insert(ctx, s.db.Collection(colBookmarks), *b)
	if err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	b.ID = id
	return nil
}

func (s *Store) CountBookmarks(ctx context.Context, user string) (int64, error) {
	n, err := s.db.Collection(colBookmarks).CountDocuments(ctx, bson.M{"user": user})
	if err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return n, nil
}

func (s *Store) ListBookmarks(ctx context.Context, user string, w query.Window) ([]models.Bookmark, error) {
	marks, ids, err := findAll[models.Bookmark](ctx, s.db.Collection(colBookmarks), bson.M{"user": user}, findOptions(query.Ranking{Window: w}))
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	for i := range marks {
		marks[i].ID = ids[i]
	}
	return marks, nil
}

func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(colBookmarks).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Feedback and contact

func (s *Store) InsertFeedback(ctx context.Context, f *models.Feedback) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	id, err := insert(ctx, s.db.Collection(colFeedback), *f)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	f.ID = id
	return nil
}

func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	items, ids, err := findAll[models.Feedback](ctx, s.db.Collection(colFeedback), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	for i := range items {
		items[i].ID = ids[i]
	}
	return items, nil
}

func (s *Store) InsertContact(ctx context.Context, m *models.ContactMessage) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	id, err := insert(ctx, s.db.Collection(colContacts), *m)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	m.ID = id
	return nil
}

func (s *Store) ListContacts(ctx context.Context) ([]models.ContactMessage, error) {
	items, ids, err := findAll[models.ContactMessage](ctx, s.db.Collection(colContacts), bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	for i := range items {
		items[i].ID = ids[i]
	}
	return items, nil
}
