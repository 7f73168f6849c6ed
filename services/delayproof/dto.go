package delayproof

// The request and response DTOs reproduce the legacy nested `in.ch2` /
// `out.data.ch2` envelope byte for byte, consumers depend on the exact
// shape. Input fields are pointers so a field that is absent (take the
// default) can be told apart from one that is present but empty (a
// validation error).

type Input struct {
	In InputBody `json:"in"`
}

type InputBody struct {
	Ch2 InputFields `json:"ch2"`
}

type InputFields struct {
	InqrDate  *string `json:"inqrDate,omitempty"`
	DelayTime *string `json:"delayTime,omitempty"`
	PdfDataYn *string `json:"pdfDataYn,omitempty"`
}

// ValidatedInput is the post-validation view of a request: all fields
// present, defaults applied. Immutable once constructed.
type ValidatedInput struct {
	InqrDate  string
	DelayTime string
	PdfDataYn string
}

type Output struct {
	Out OutputBody `json:"out"`
}

type OutputBody struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data OutputData `json:"data"`
}

type OutputData struct {
	Ch2 OutputChannel `json:"ch2"`
}

type OutputChannel struct {
	Code string       `json:"code"`
	Msg  string       `json:"msg"`
	Data DelayRecords `json:"data"`
}

type DelayRecords struct {
	DataArray []DelayRecord `json:"dataArray"`
}

// DelayRecord is the canonical, source-agnostic delay entry.
// DelayDate is YYMMDD; DelayStart/DelayEnd are YYYYMMDDHHmm with the
// minutes always 00 (bucket granularity is hourly). PdfBase64 is nil
// (field absent on the wire) unless document generation was requested,
// in which case it is set on every record: the encoded payload on
// success, an explicit empty string on failure.
type DelayRecord struct {
	Line       string  `json:"line"`
	Direction  string  `json:"direction"`
	TimeRange  string  `json:"timeRange"`
	DelayDate  string  `json:"delayDate"`
	DelayStart string  `json:"delayStart"`
	DelayEnd   string  `json:"delayEnd"`
	DelayTime  string  `json:"delayTime"`
	PdfBase64  *string `json:"pdfBase64,omitempty"`
}
