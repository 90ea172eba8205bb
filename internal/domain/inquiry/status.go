package inquiry

// InquiryStatus is the business lifecycle of an inquiry: OPEN -> ANSWERED,
// then either CONVERTED or CLOSED. The two terminal states are mutually
// exclusive and reachable only from OPEN or ANSWERED.
type InquiryStatus string

const (
	StatusOpen      InquiryStatus = "OPEN"
	StatusAnswered  InquiryStatus = "ANSWERED"
	StatusConverted InquiryStatus = "CONVERTED"
	StatusClosed    InquiryStatus = "CLOSED"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusAnswered, StatusConverted, StatusClosed:
		return true
	}
	return false
}

func (s InquiryStatus) Terminal() bool {
	return s == StatusConverted || s == StatusClosed
}
