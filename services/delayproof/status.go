package delayproof

// Status is one of the nine fixed response codes of the legacy delay
// proof API. Codes and messages are load-bearing, downstream consumers
// string-match on them, do not edit.
type Status struct {
	Code string
	Msg  string
}

var (
	StatusSuccess        = Status{Code: "1000200", Msg: "자동연동 성공"}
	StatusSuccessNoData  = Status{Code: "1000204", Msg: "자동연동 성공(내용 없음)"}
	StatusSuccessPartial = Status{Code: "1000206", Msg: "자동연동 성공(부분 성공)"}

	StatusInvalidDateFormat = Status{Code: "1000019", Msg: "조회 시작일 형식이 잘못되었습니다."}
	StatusFutureDate        = Status{Code: "1000016", Msg: "조회 시작/종료일이 오늘보다 미래입니다."}
	StatusInvalidInput      = Status{Code: "1000103", Msg: "요청 입력값의 형식이 올바르지 않습니다. 확인 후 다시 시도해 주세요."}

	StatusNetworkError = Status{Code: "1000021", Msg: "네트워크 에러"}
	StatusTimeout      = Status{Code: "1000408", Msg: "자동연동 실패하였습니다. 잠시 후 다시 시도해 주세요.(시간초과)"}
	StatusParsingError = Status{Code: "1000031", Msg: "타깃사이트의 응답 값이 누락되었습니다. 문제가 계속될 경우 고객센터에 문의해 주세요."}
)

// same code as StatusSuccessNoData but with a message calling out that
// one of the sources was out of its lookback window
const partialNoDataMsg = "자동연동 성공(내용 없음) - 일부 사이트 연동 실패"
