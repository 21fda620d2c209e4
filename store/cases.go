package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/autonomy-cases/consts"
	"github.com/bitmark-inc/autonomy-cases/schema"
	"github.com/bitmark-inc/autonomy-cases/utils"
)

const casesCollection = schema.CasesCollection

var (
	ErrNoCaseDataset   = fmt.Errorf("no case data-set")
	ErrCaseDataFetch   = fmt.Errorf("fetch case data fail")
	ErrCaseDataWrite   = fmt.Errorf("write case data fail")
	ErrCaseDecode      = fmt.Errorf("decode case data fail")
	ErrUnknownAreaType = fmt.Errorf("unknown area type")
)

// CaseStore keeps cleaned case records, one per area and specimen date
type CaseStore interface {
	ReplaceCases(records []schema.CaseRecord) error
	GetCases(areaType, areaName string, limit int64) ([]schema.CaseRecord, error)
	DeleteCasesBefore(timeBefore int64) (int64, error)
}

// ReplaceCases upserts records keyed by area type, area name and report time
func (m *mongoDB) ReplaceCases(records []schema.CaseRecord) error {
	if len(records) == 0 {
		log.WithField("prefix", mongoLogPrefix).Debug("no case record to update")
		return nil
	}

	models := make([]mongo.WriteModel, len(records))
	for i, r := range records {
		filter := bson.M{"area_type": r.AreaType, "area_name": r.AreaName, "report_ts": r.ReportTime}
		models[i] = mongo.NewReplaceOneModel().SetFilter(filter).SetReplacement(r).SetUpsert(true)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*defaultTimeout)
	defer cancel()

	opts := options.BulkWrite().SetOrdered(false)
	res, err := m.cases().BulkWrite(ctx, models, opts)
	if err != nil {
		if errs, hasErr := err.(mongo.BulkWriteException); hasErr {
			if len(errs.WriteErrors) == 1 && DuplicateKeyCode == errs.WriteErrors[0].Code {
				log.WithField("prefix", mongoLogPrefix).Warnf("case update with error: %s", err)
				return nil
			}
		}
		log.WithField("prefix", mongoLogPrefix).Errorf("case update with error: %s", err)
		return ErrCaseDataWrite
	}

	log.WithFields(log.Fields{
		"prefix":   mongoLogPrefix,
		"upserted": res.UpsertedCount,
		"modified": res.ModifiedCount,
	}).Debug("ReplaceCases write data")
	return nil
}

// GetCases returns the latest records of an area type, newest first. An empty
// areaName matches every area; a non-positive limit returns everything.
func (m *mongoDB) GetCases(areaType, areaName string, limit int64) ([]schema.CaseRecord, error) {
	if !consts.IsAreaType(areaType) {
		return nil, ErrUnknownAreaType
	}
	log.WithFields(log.Fields{"prefix": mongoLogPrefix, "area_type": areaType, "area_name": areaName}).Debug("GetCases")

	filter := bson.M{"area_type": areaType}
	if areaName != "" {
		filter["area_key"] = utils.EnNameToKey(areaName)
	}
	opts := options.Find().SetSort(bson.D{{Key: "report_ts", Value: -1}, {Key: "area_name", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cur, err := m.cases().Find(ctx, filter, opts)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Errorf("case data find error: %s", err)
		return nil, ErrCaseDataFetch
	}
	defer cur.Close(ctx)

	results := make([]schema.CaseRecord, 0)
	for cur.Next(ctx) {
		var r schema.CaseRecord
		if err := cur.Decode(&r); err != nil {
			log.WithField("prefix", mongoLogPrefix).Errorf("case data decode error: %s", err)
			return nil, ErrCaseDecode
		}
		results = append(results, r)
	}
	if err := cur.Err(); err != nil {
		return nil, ErrCaseDataFetch
	}

	if len(results) == 0 && areaName != "" {
		return nil, ErrNoCaseDataset
	}
	return results, nil
}

// DeleteCasesBefore removes records reported at or before timeBefore
func (m *mongoDB) DeleteCasesBefore(timeBefore int64) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	filter := bson.M{"report_ts": bson.M{"$lte": timeBefore}}
	res, err := m.cases().DeleteMany(ctx, filter)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Warnf("case delete unused record with error: %s", err)
		return 0, err
	}
	log.WithFields(log.Fields{"prefix": mongoLogPrefix, "records": res.DeletedCount}).Debug("DeleteCasesBefore delete data")
	return res.DeletedCount, nil
}
