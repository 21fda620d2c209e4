package api

import "github.com/bitmark-inc/autonomy-cases/store"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",

		1020: "unknown case view",
		1021: "cannot parse case data",
		1022: "unexpected case data columns",
		1023: "query case data error",
		1024: store.ErrNoCaseDataset.Error(),
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters = errorJSON(1010)

	errorUnknownView   = errorJSON(1020)
	errorCaseParse     = errorJSON(1021)
	errorCaseSchema    = errorJSON(1022)
	errorCaseStore     = errorJSON(1023)
	errorNoCaseDataset = errorJSON(1024)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
