package model

// Outcome is the result of a single delivery attempt. A failed outcome
// carries the reason instead of returning it as an error, so callers cannot
// accidentally abort a run on a notification problem.
type Outcome struct {
	delivered bool
	reason    error
}

func Delivered() Outcome {
	return Outcome{delivered: true}
}

func Failed(reason error) Outcome {
	return Outcome{reason: reason}
}

func (o Outcome) Delivered() bool {
	return o.delivered
}

// Reason returns why the delivery failed, nil when delivered
func (o Outcome) Reason() error {
	if o.delivered {
		return nil
	}
	return o.reason
}
