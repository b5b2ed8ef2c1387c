package types

// ---- Telemetry kinds ----

type Kind string

const (
	KindKeypad  Kind = "keypad"
	KindDisplay Kind = "display"
	KindMotor   Kind = "motor"
)

// Event is one state update produced by the control loop. Err, when
// non-empty, marks a failed step and Payload is then nil.
type Event struct {
	Kind    Kind
	Payload any
	TSms    int64
	Err     string
}

// ---- Payloads ----

type KeyPress struct {
	Raw    uint16 `json:"raw"`
	Symbol uint8  `json:"symbol"`
	Label  string `json:"label"`
}

type DisplayValue struct {
	Pattern uint8 `json:"pattern"`
}

type MotorValue struct {
	Duty    uint8  `json:"duty"`    // duty index 0..10
	Mode    string `json:"mode"`    // "low", "high", "pwm"
	Compare uint32 `json:"compare"` // timer compare counts in pwm mode
	Enabled bool   `json:"enabled"` // timer running
}
