package delayproof

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		name    string
		count   int
		partial bool
		code    string
		msg     string
	}{
		{name: "records, both sources", count: 3, partial: false, code: "1000200", msg: "자동연동 성공"},
		{name: "records, partial", count: 3, partial: true, code: "1000206", msg: "자동연동 성공(부분 성공)"},
		{name: "no records, both sources", count: 0, partial: false, code: "1000204", msg: "자동연동 성공(내용 없음)"},
		{name: "no records, partial", count: 0, partial: true, code: "1000204", msg: "자동연동 성공(내용 없음) - 일부 사이트 연동 실패"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := statusFor(tc.count, tc.partial)
			require.Equal(t, tc.code, code)
			require.Equal(t, tc.msg, msg)
		})
	}
}

// the status is mirrored at both envelope levels and an empty result
// serializes dataArray as [] rather than null
func TestOutputEnvelopeShape(t *testing.T) {
	out := ErrorOutput(StatusTimeout)
	require.Equal(t, out.Out.Code, out.Out.Data.Ch2.Code)
	require.Equal(t, out.Out.Msg, out.Out.Data.Ch2.Msg)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"dataArray":[]`)
	require.NotContains(t, string(raw), "pdfBase64")
}

func TestSuccessResponseCarriesRecords(t *testing.T) {
	records := []DelayRecord{
		{Line: "2호선", Direction: "상선", TimeRange: "첫차~09시", DelayTime: "40"},
	}

	out := successResponse(records, false)
	require.Equal(t, StatusSuccess.Code, out.Out.Code)
	require.Equal(t, records, out.Out.Data.Ch2.Data.DataArray)

	out = successResponse(records, true)
	require.Equal(t, StatusSuccessPartial.Code, out.Out.Code)
}

func TestPdfBase64Serialization(t *testing.T) {
	payload := "JVBERi0="
	empty := ""

	records := []DelayRecord{
		{Line: "a"},
		{Line: "b", PdfBase64: &empty},
		{Line: "c", PdfBase64: &payload},
	}
	raw, err := json.Marshal(successResponse(records, false))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	arr := decoded["out"].(map[string]any)["data"].(map[string]any)["ch2"].(map[string]any)["data"].(map[string]any)["dataArray"].([]any)
	require.Len(t, arr, 3)

	_, present := arr[0].(map[string]any)["pdfBase64"]
	require.False(t, present, "nil pointer must leave the field off the wire")
	require.Equal(t, "", arr[1].(map[string]any)["pdfBase64"])
	require.Equal(t, payload, arr[2].(map[string]any)["pdfBase64"])
}
