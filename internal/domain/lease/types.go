package lease

type Status string

const (
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusReleased   Status = "released"
	StatusSuperseded Status = "superseded"
)

func (s Status) String() string {
	return string(s)
}
