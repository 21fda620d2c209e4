package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/autonomy-cases/consts"
	"github.com/bitmark-inc/autonomy-cases/dataset"
	"github.com/bitmark-inc/autonomy-cases/external/fetcher"
	"github.com/bitmark-inc/autonomy-cases/store"
	"github.com/bitmark-inc/autonomy-cases/utils"
)

type casesCrawler struct {
	mongoStore  store.CaseStore
	fetcher     fetcher.Fetcher
	url         string
	dateColumns []string
	filterData  bool
	keepDays    int
	now         func() time.Time
}

// Run downloads the cases csv once and stores every geography view under a
// single snapshot id. A failing view is logged and skipped.
func (c casesCrawler) Run(ctx context.Context) error {
	d, err := dataset.New(ctx, c.fetcher, c.url, c.dateColumns, c.filterData)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "url": c.url, "error": err}).Error("fetch cases csv")
		return err
	}

	snapshotID := uuid.New().String()
	updateTime := c.now()

	failed := 0
	for _, areaType := range consts.AreaTypes {
		count, err := c.storeView(d, areaType, snapshotID, updateTime)
		if err != nil {
			failed++
			log.WithFields(log.Fields{"prefix": logPrefix, "area_type": areaType, "error": err}).Error("store case view")
			continue
		}
		log.WithFields(log.Fields{"prefix": logPrefix, "area_type": areaType, "snapshot": snapshotID, "data count": count}).Info("stored case view")
	}

	if c.keepDays > 0 {
		deleted, err := c.mongoStore.DeleteCasesBefore(utils.DaysBefore(updateTime, c.keepDays))
		if err != nil {
			log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Error("delete expired cases")
		} else {
			log.WithFields(log.Fields{"prefix": logPrefix, "records": deleted}).Debug("delete expired cases")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d case views failed", failed, len(consts.AreaTypes))
	}
	return nil
}

func (c casesCrawler) storeView(d *dataset.CasesDataset, areaType, snapshotID string, updateTime time.Time) (int, error) {
	table, err := d.View(areaType, "")
	if err != nil {
		return 0, err
	}

	records, err := dataset.ToRecords(table, updateTime)
	if err != nil {
		return 0, err
	}
	for i := range records {
		records[i].SnapshotID = snapshotID
	}

	if err := c.mongoStore.ReplaceCases(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// newCasesCrawler - new cron job for the daily cases csv
func newCasesCrawler(mongoStore store.CaseStore, f fetcher.Fetcher, url string, dateColumns []string, filterData bool, keepDays int) Cron {
	return &casesCrawler{
		mongoStore:  mongoStore,
		fetcher:     f,
		url:         url,
		dateColumns: dateColumns,
		filterData:  filterData,
		keepDays:    keepDays,
		now:         time.Now,
	}
}
