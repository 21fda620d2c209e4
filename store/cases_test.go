package store

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-cases/consts"
	"github.com/bitmark-inc/autonomy-cases/schema"
)

type CasesTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	store        MongoStore
}

func NewCasesTestSuite(connURI, dbName string) *CasesTestSuite {
	return &CasesTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *CasesTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)
	s.store = NewMongoStore(mongoClient, s.testDBName)

	if err := s.store.Ping(); err != nil {
		s.T().Skipf("mongo db is not available: %s", err)
	}
}

func (s *CasesTestSuite) SetupTest() {
	// every test starts from a clean collection with the fixtures loaded
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	indexer := schema.NewMongoDBIndexer(s.connURI, s.testDBName)
	defer indexer.Close()
	if err := indexer.IndexCaseCollection(); err != nil {
		s.T().Fatal(err)
	}
	if err := s.LoadMongoDBFixtures(); err != nil {
		s.T().Fatal(err)
	}
}

func (s *CasesTestSuite) TearDownSuite() {
	if s.mongoClient != nil {
		_ = s.CleanMongoDB()
		s.store.Close()
	}
}

// CleanMongoDB drop the whole test mongodb
func (s *CasesTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

// LoadMongoDBFixtures will preload fixtures into test mongodb
func (s *CasesTestSuite) LoadMongoDBFixtures() error {
	records, err := s.LoadCaseFixtures()
	if err != nil {
		return err
	}
	data := make([]interface{}, len(records))
	for i, r := range records {
		data[i] = r
	}
	_, err = s.testDatabase.Collection(schema.CasesCollection).InsertMany(context.Background(), data)
	return err
}

func (s *CasesTestSuite) LoadCaseFixtures() ([]schema.CaseRecord, error) {
	f, err := os.Open("fixtures/cases_england.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []schema.CaseRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *CasesTestSuite) count(filter bson.M) int64 {
	count, err := s.testDatabase.Collection(schema.CasesCollection).CountDocuments(context.Background(), filter)
	s.NoError(err)
	return count
}

func (s *CasesTestSuite) TestGetCasesByName() {
	records, err := s.store.GetCases(consts.AreaTypeNation, "England", 0)
	s.NoError(err)
	s.Len(records, 3)
	s.Equal("2020-06-09", records[0].ReportTimeDate)
	s.Equal("2020-06-01", records[2].ReportTimeDate)
	s.Equal(int64(5000), *records[0].CumulativeCases)

	records, err = s.store.GetCases(consts.AreaTypeNation, "England", 2)
	s.NoError(err)
	s.Len(records, 2)
	s.Equal("2020-06-02", records[1].ReportTimeDate)
}

func (s *CasesTestSuite) TestGetCasesByNormalizedName() {
	records, err := s.store.GetCases(consts.AreaTypeUTLA, "bristol, city of", 0)
	s.NoError(err)
	s.Len(records, 1)
	s.Equal("Bristol, City of", records[0].AreaName)
	s.Nil(records[0].DailyCases)
}

func (s *CasesTestSuite) TestGetCasesAllAreas() {
	records, err := s.store.GetCases(consts.AreaTypeRegion, "", 0)
	s.NoError(err)
	s.Len(records, 2)
	s.Equal("North East", records[0].AreaName)
	s.Equal("London", records[1].AreaName)
}

func (s *CasesTestSuite) TestGetCasesUnknown() {
	_, err := s.store.GetCases("Country", "", 0)
	s.Equal(ErrUnknownAreaType, err)

	_, err = s.store.GetCases(consts.AreaTypeRegion, "Atlantis", 0)
	s.Equal(ErrNoCaseDataset, err)
}

func (s *CasesTestSuite) TestReplaceCases() {
	records, err := s.LoadCaseFixtures()
	s.NoError(err)

	cum := int64(4200)
	updated := records[1]
	updated.CumulativeCases = &cum
	updated.SnapshotID = "snapshot"

	added := records[0]
	added.ReportTime = 1591747200
	added.ReportTimeDate = "2020-06-10"

	s.NoError(s.store.ReplaceCases([]schema.CaseRecord{updated, added}))
	s.Equal(int64(8), s.count(bson.M{}))

	got, err := s.store.GetCases(consts.AreaTypeNation, "England", 0)
	s.NoError(err)
	s.Len(got, 4)
	s.Equal("2020-06-10", got[0].ReportTimeDate)
	s.Equal("2020-06-02", got[2].ReportTimeDate)
	s.Equal(int64(4200), *got[2].CumulativeCases)
	s.Equal("snapshot", got[2].SnapshotID)

	// replaying the same records is a no-op
	s.NoError(s.store.ReplaceCases([]schema.CaseRecord{updated, added}))
	s.Equal(int64(8), s.count(bson.M{}))

	s.NoError(s.store.ReplaceCases(nil))
}

func (s *CasesTestSuite) TestDeleteCasesBefore() {
	deleted, err := s.store.DeleteCasesBefore(1591056000)
	s.NoError(err)
	s.Equal(int64(4), deleted)
	s.Equal(int64(3), s.count(bson.M{}))
	s.Equal(int64(0), s.count(bson.M{"report_ts": bson.M{"$lte": 1591056000}}))
}

func TestCasesTestSuite(t *testing.T) {
	suite.Run(t, NewCasesTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "test-db"))
}
