package delayproof

// statusFor resolves the success-shaped status from the record count
// and the partial-failure flag. Priority order matters: partiality is
// inspected before emptiness.
func statusFor(count int, partialFailure bool) (string, string) {
	if partialFailure {
		if count > 0 {
			return StatusSuccessPartial.Code, StatusSuccessPartial.Msg
		}
		return StatusSuccessNoData.Code, partialNoDataMsg
	}
	if count > 0 {
		return StatusSuccess.Code, StatusSuccess.Msg
	}
	return StatusSuccessNoData.Code, StatusSuccessNoData.Msg
}

func successResponse(records []DelayRecord, partialFailure bool) Output {
	code, msg := statusFor(len(records), partialFailure)
	return buildOutput(code, msg, records)
}

// ErrorOutput wraps a failure status in the standard envelope with an
// empty record list.
func ErrorOutput(status Status) Output {
	return buildOutput(status.Code, status.Msg, nil)
}

func buildOutput(code, msg string, records []DelayRecord) Output {
	if records == nil {
		// dataArray serializes as [] rather than null
		records = []DelayRecord{}
	}
	return Output{
		Out: OutputBody{
			Code: code,
			Msg:  msg,
			Data: OutputData{
				Ch2: OutputChannel{
					Code: code,
					Msg:  msg,
					Data: DelayRecords{DataArray: records},
				},
			},
		},
	}
}
