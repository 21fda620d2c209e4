package schema

const (
	CasesCollection = "cases"
)

// CaseRecord is one area's lab-confirmed case counts for a specimen date, as
// stored after cleaning
type CaseRecord struct {
	AreaType        string `json:"area_type" bson:"area_type" csv:"area_type"`
	AreaName        string `json:"area_name" bson:"area_name" csv:"area_name"`
	AreaCode        string `json:"area_code" bson:"area_code" csv:"area_code"`
	AreaKey         string `json:"area_key" bson:"area_key" csv:"-"`
	ReportTime      int64  `json:"report_ts" bson:"report_ts" csv:"-"`
	ReportTimeDate  string `json:"report_date" bson:"report_date" csv:"date"`
	DailyCases      *int64 `json:"daily_cases" bson:"daily_cases" csv:"daily_cases"`
	CumulativeCases *int64 `json:"cumulative_cases" bson:"cumulative_cases" csv:"cumulative_cases"`
	SnapshotID      string `json:"snapshot_id,omitempty" bson:"snapshot_id" csv:"-"`
	UpdateTime      int64  `json:"update_ts" bson:"update_ts" csv:"-"`
}
