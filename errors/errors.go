package errors

// Category identifies where a failure originated.
type Category int

const (
	// NoError is the zero sentinel: not a failure.
	NoError Category = 0

	AddonArg     Category = 1 // module addon argument error
	WrapperArg   Category = 2 // wrapper argument error
	ParamObject  Category = 3 // scrypt parameter object error
	ConfigObject Category = 4 // scrypt config object error
	Scrypt       Category = 5 // native scrypt routine error

	// Internal is the catch-all for unrecognized categories.
	Internal Category = 500
)

// Value is the structured error returned to callers. A nil *Value is the
// explicit no-error sentinel. Immutable once constructed.
type Value struct {
	Code          int    `json:"err_code"`
	Message       string `json:"err_message"`
	ScryptCode    int    `json:"scrypt_err_code,omitempty"`
	ScryptMessage string `json:"scrypt_err_message,omitempty"`
}

// Error implements the error interface.
func (v *Value) Error() string {
	return v.Message
}

// labels prefixes messages by originating category.
var labels = map[Category]string{
	AddonArg:     "Module addon argument error: ",
	WrapperArg:   "Wrapper argument error: ",
	ParamObject:  "Scrypt parameter object error: ",
	ConfigObject: "Scrypt config object error: ",
}

const unknownMessage = "Unknown internal error - please report this issue so the module can be improved"

// Make builds an error value for the given category. NoError returns the nil
// sentinel regardless of message. An unrecognized category is remapped to
// Internal with a fixed message; the caller-supplied message is discarded.
func Make(cat Category, msg string) *Value {
	if cat == NoError {
		return nil
	}

	label, ok := labels[cat]
	if !ok {
		return &Value{Code: int(Internal), Message: unknownMessage}
	}

	return &Value{Code: int(cat), Message: label + msg}
}

// MakeScrypt builds an error value for a native scrypt status code. The
// caller must already have classified the failure as native-originated.
// Code zero returns the nil sentinel.
func MakeScrypt(code int) *Value {
	if code == 0 {
		return nil
	}

	return &Value{
		Code:          int(Scrypt),
		Message:       "Scrypt error",
		ScryptCode:    code,
		ScryptMessage: Describe(code),
	}
}
