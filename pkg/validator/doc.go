// Package validator provides a small rule-based validation capability with
// aggregated field errors.
//
// A validation pass applies every rule and collects every failure, so the
// caller receives all problems at once instead of only the first one. The
// same capability backs configuration resolution, persisted-session schema
// checks and CSRF token policy — one interface, three call sites.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("API_BASE_URL", cfg.APIBaseURL),
//	    validator.ValidURL("API_BASE_URL", cfg.APIBaseURL),
//	)
//	if err != nil {
//	    fieldErrs := validator.ExtractValidationErrors(err)
//	    for _, field := range fieldErrs.Fields() {
//	        log.Println(field, fieldErrs.Get(field))
//	    }
//	}
package validator
