package consts

import (
	"fmt"
	"strings"
)

const (
	// CasesURL is the latest lab-confirmed cases CSV published by coronavirus.data.gov.uk
	CasesURL = "https://coronavirus.data.gov.uk/downloads/csv/coronavirus-cases_latest.csv"

	AreaTypeNation = "Nation"
	AreaTypeRegion = "Region"
	AreaTypeUTLA   = "Upper tier local authority"
)

// AreaTypes lists the geography levels served by the dataset views, top down
var AreaTypes = []string{AreaTypeNation, AreaTypeRegion, AreaTypeUTLA}

var EnglandRegions map[string]string

func init() {
	EnglandRegions = make(map[string]string)

	EnglandRegions["E12000001"] = "North East"
	EnglandRegions["E12000002"] = "North West"
	EnglandRegions["E12000003"] = "Yorkshire and The Humber"
	EnglandRegions["E12000004"] = "East Midlands"
	EnglandRegions["E12000005"] = "West Midlands"
	EnglandRegions["E12000006"] = "East of England"
	EnglandRegions["E12000007"] = "London"
	EnglandRegions["E12000008"] = "South East"
	EnglandRegions["E12000009"] = "South West"
}

// RegionKey - convert an english region code into key
func RegionKey(code string) (string, error) {
	if name, ok := EnglandRegions[code]; !ok {
		return "", fmt.Errorf("%s not exist", code)
	} else {
		return strings.Replace(strings.ToLower(name), " ", "_", -1), nil
	}
}

// IsAreaType reports whether the value is one of the geography levels in AreaTypes
func IsAreaType(areaType string) bool {
	for _, t := range AreaTypes {
		if t == areaType {
			return true
		}
	}
	return false
}
