package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/autonomy-cases/consts"
)

func TestHealthz(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	viper.Set("server.version", "1.2.3")
	defer viper.Set("server.version", nil)

	s, m, _ := newTestServer(ctl)
	m.EXPECT().Ping().Return(nil).Times(1)

	w := serve(s, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, map[string]string{"status": "OK", "version": "1.2.3"}, resp)

	m.EXPECT().Ping().Return(fmt.Errorf("server selection timeout")).Times(1)

	w = serve(s, "/healthz")
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")
	assert.Equal(t, int64(999), errorCode(t, w))
}

func TestInformation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s, _, v := newTestServer(ctl)
	v.EXPECT().URL().Return(consts.CasesURL).Times(1)
	v.EXPECT().DateColumns().Return([]string{"Specimen date"}).Times(1)
	v.EXPECT().FilterData().Return(true).Times(1)

	w := serve(s, "/api/information")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Information struct {
			Source struct {
				URL         string   `json:"url"`
				DateColumns []string `json:"date_columns"`
				FilterData  bool     `json:"filter_data"`
			} `json:"source"`
			Views   []string            `json:"views"`
			Regions []map[string]string `json:"regions"`
		} `json:"information"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, consts.CasesURL, resp.Information.Source.URL)
	assert.Equal(t, []string{"Specimen date"}, resp.Information.Source.DateColumns)
	assert.True(t, resp.Information.Source.FilterData)
	assert.Equal(t, []string{"national", "regional", "utla"}, resp.Information.Views)
	assert.Len(t, resp.Information.Regions, 9)
	assert.Equal(t, map[string]string{"code": "E12000001", "name": "North East", "key": "north_east"}, resp.Information.Regions[0])
}
