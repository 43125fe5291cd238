package robot

import "fmt"

// Result classifies how a run ended.
type Result int

const (
	Success Result = iota
	FailWallCollision
	FailOffTarget
)

var resultNames = map[Result]string{
	Success:           "SUCCESS",
	FailWallCollision: "FAIL_WALL_COLLISION",
	FailOffTarget:     "FAIL_OFF_TARGET",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// MarshalText encodes the result by name.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a result name.
func (r *Result) UnmarshalText(text []byte) error {
	for res, name := range resultNames {
		if name == string(text) {
			*r = res
			return nil
		}
	}
	return fmt.Errorf("unknown result %q", text)
}
