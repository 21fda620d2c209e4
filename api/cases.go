package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/autonomy-cases/consts"
	"github.com/bitmark-inc/autonomy-cases/dataset"
	"github.com/bitmark-inc/autonomy-cases/store"
	"github.com/bitmark-inc/autonomy-cases/utils"
)

const (
	viewNational = "national"
	viewRegional = "regional"
	viewUTLA     = "utla"

	maxHistoryLimit = 1000
)

var viewAreaTypes = map[string]string{
	viewNational: consts.AreaTypeNation,
	viewRegional: consts.AreaTypeRegion,
	viewUTLA:     consts.AreaTypeUTLA,
}

// casesView serves a geography view of the dataset, optionally narrowed to
// one area by the `name` query
func (s *Server) casesView(view string) gin.HandlerFunc {
	areaType := viewAreaTypes[view]

	return func(c *gin.Context) {
		name := c.Query("name")

		viewer, generation := s.currentViewer()

		// the cleaning cutoff moves at UTC midnight
		_, day := utils.ReportTime(time.Now())
		key := fmt.Sprintf("%d|%s|%s|%s", generation, view, name, day)

		if cached, ok := s.cache.Get(key); ok {
			c.JSON(http.StatusOK, cached)
			return
		}

		table, err := viewer.View(areaType, name)
		if err != nil {
			abortWithDatasetError(c, err)
			return
		}

		s.cache.SetDefault(key, table)
		c.JSON(http.StatusOK, table)
	}
}

// casesHistory serves stored records of a view, newest first
func (s *Server) casesHistory(c *gin.Context) {
	areaType, ok := viewAreaTypes[c.Param("view")]
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorUnknownView)
		return
	}

	var limit int64
	if l := c.Query("limit"); l != "" {
		n, err := strconv.ParseInt(l, 10, 64)
		if err != nil || n < 0 || n > maxHistoryLimit {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		limit = n
	}

	records, err := s.mongoStore.GetCases(areaType, c.Query("name"), limit)
	if err != nil {
		switch err {
		case store.ErrNoCaseDataset:
			abortWithEncoding(c, http.StatusNotFound, errorNoCaseDataset)
		case store.ErrUnknownAreaType:
			abortWithEncoding(c, http.StatusNotFound, errorUnknownView)
		default:
			abortWithEncoding(c, http.StatusInternalServerError, errorCaseStore, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func abortWithDatasetError(c *gin.Context, err error) {
	var parseErr *dataset.ParseError
	var schemaErr *dataset.SchemaError

	switch {
	case errors.Is(err, dataset.ErrUnknownAreaType):
		abortWithEncoding(c, http.StatusNotFound, errorUnknownView, err)
	case errors.As(err, &parseErr):
		log.WithField("err", err).Error("parse case data")
		abortWithEncoding(c, http.StatusInternalServerError, errorCaseParse, err)
	case errors.As(err, &schemaErr):
		log.WithField("err", err).Error("case data schema")
		abortWithEncoding(c, http.StatusInternalServerError, errorCaseSchema, err)
	default:
		shouldInterupt(err, c)
	}
}
