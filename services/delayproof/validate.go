package delayproof

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/hofftmuz/subway-delay-certificate/lib/timezone"
)

// ValidationError carries the status the caller should answer with.
// Validation failures are never retried.
type ValidationError struct {
	Status Status
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status.Code, e.Status.Msg)
}

var dateDigits = regexp.MustCompile(`^\d{8}$`)

// Validate checks the request fields and applies defaults. An absent
// field takes its default; a field that was sent but is empty or
// malformed is rejected.
func Validate(input Input, now time.Time) (ValidatedInput, error) {
	fields := input.In.Ch2

	inqrDate, err := validateInqrDate(fields.InqrDate, now)
	if err != nil {
		return ValidatedInput{}, err
	}
	delayTime, err := validateDelayTime(fields.DelayTime)
	if err != nil {
		return ValidatedInput{}, err
	}
	pdfDataYn, err := validatePdfDataYn(fields.PdfDataYn)
	if err != nil {
		return ValidatedInput{}, err
	}

	return ValidatedInput{
		InqrDate:  inqrDate,
		DelayTime: delayTime,
		PdfDataYn: pdfDataYn,
	}, nil
}

func validateInqrDate(v *string, now time.Time) (string, error) {
	if v == nil {
		return timezone.StartOfDay(now).Format("20060102"), nil
	}
	if *v == "" || !dateDigits.MatchString(*v) {
		return "", &ValidationError{Status: StatusInvalidDateFormat}
	}

	// strict parse rejects impossible dates like 20251301 or 20250230
	date, err := time.ParseInLocation("20060102", *v, timezone.Location)
	if err != nil {
		return "", &ValidationError{Status: StatusInvalidDateFormat}
	}

	if timezone.StartOfDay(date).After(timezone.StartOfDay(now)) {
		return "", &ValidationError{Status: StatusFutureDate}
	}

	return *v, nil
}

func validateDelayTime(v *string) (string, error) {
	if v == nil {
		return "30", nil
	}
	if *v == "" {
		return "", &ValidationError{Status: StatusInvalidInput}
	}

	// the round trip rejects "0030", "+30", "30.5", " 30 " and friends
	n, err := strconv.Atoi(*v)
	if err != nil || strconv.Itoa(n) != *v || n < 0 {
		return "", &ValidationError{Status: StatusInvalidInput}
	}

	return *v, nil
}

func validatePdfDataYn(v *string) (string, error) {
	if v == nil {
		return "0", nil
	}
	if *v != "0" && *v != "1" {
		return "", &ValidationError{Status: StatusInvalidInput}
	}
	return *v, nil
}
