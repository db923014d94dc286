package schemaful

import (
	"io"
	"sync"

	eng "github.com/reoring/schemaful/internal/engine"
	drvgojson "github.com/reoring/schemaful/source/gojson"
	jsonsrc "github.com/reoring/schemaful/source/json"
)

// Token kinds and tokens are shared with the engine so that third-party
// drivers can feed it directly.
type (
	TokenKind = eng.Kind
	Token     = eng.Token
)

const (
	TokenBeginObject = eng.KindBeginObject
	TokenEndObject   = eng.KindEndObject
	TokenBeginArray  = eng.KindBeginArray
	TokenEndArray    = eng.KindEndArray
	TokenKey         = eng.KindKey
	TokenString      = eng.KindString
	TokenNumber      = eng.KindNumber
	TokenBool        = eng.KindBool
	TokenNull        = eng.KindNull
)

// Source is a JSON token stream. Location reports the byte offset of the
// last token, or -1 when unknown. NextToken returns io.EOF after the last
// token.
type Source interface {
	NextToken() (Token, error)
	Location() int64
}

// JSONDriver converts JSON input into a Source. The default implementation
// is based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the process-wide JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

// CurrentJSONDriver returns the process-wide driver.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// JSONDriverByName returns a built-in driver: "go-json" or "encoding/json".
func JSONDriverByName(name string) (JSONDriver, bool) {
	switch name {
	case drvgojson.Name:
		return goJSONDriver{}, true
	case jsonsrc.Name:
		return stdJSONDriver{}, true
	default:
		return nil, false
	}
}

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source { return drvgojson.NewReader(r) }
func (goJSONDriver) NewBytes(b []byte) Source     { return drvgojson.NewBytes(b) }
func (goJSONDriver) Name() string                 { return drvgojson.Name }

// stdJSONDriver reports offsets, so MaxBytes is also enforced mid-stream.
type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return jsonsrc.NewReader(r) }
func (stdJSONDriver) NewBytes(b []byte) Source     { return jsonsrc.NewBytes(b) }
func (stdJSONDriver) Name() string                 { return jsonsrc.Name }

// JSONReader wraps an io.Reader as a Source using the process-wide driver.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a Source using the process-wide driver.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }
