package chatskema

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	eng "github.com/reoring/chatskema/internal/engine"
	"github.com/reoring/chatskema/source/gojson"
)

// TokenSource is the token stream a JSONDriver produces.
type TokenSource = eng.TokenSource

// Token is a single JSON token with its approximate byte offset.
type Token = eng.Token

// Source is a stream of JSON tokens. Implementations come from a JSONDriver.
type Source interface {
	tokens() eng.TokenSource
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is backed by goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) TokenSource
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the go-json backed driver.
func UseDefaultJSONDriver() { SetJSONDriver(goJSONDriver{}) }

// JSONDriverName reports the active driver.
func JSONDriverName() string { return getJSONDriver().Name() }

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) eng.TokenSource { return gojson.NewReader(r) }
func (goJSONDriver) Name() string                          { return "go-json" }

type readerSource struct{ r io.Reader }

func (s readerSource) tokens() eng.TokenSource { return getJSONDriver().NewReader(s.r) }

type bytesSource struct{ b []byte }

func (s bytesSource) tokens() eng.TokenSource {
	return getJSONDriver().NewReader(bytes.NewReader(s.b))
}

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return readerSource{r: r} }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return bytesSource{b: b} }

// ReadTree reads one JSON document from src into a wire tree, applying the
// duplicate-key, depth, and size limits in opt.
func ReadTree(src Source, opt DecodeOpt) (any, error) {
	log := opt.logger()
	sink := func(si eng.SimpleIssue) {
		if si.Code != CodeDuplicateKey || opt.OnDuplicateKey != Warn {
			return
		}
		it := NewIssue(si.Path, si.Code, nil, nil)
		log.Warn("duplicate key in payload", zap.String("path", si.Path))
		if opt.OnWarning != nil {
			opt.OnWarning(it)
		}
	}
	ts := eng.WrapWithEnforcement(src.tokens(), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		FailFast:    opt.FailFast,
		IssueSink:   sink,
	})
	conv := eng.ExactNumbers
	if opt.NumberMode == NumberFloat64 {
		conv = eng.Float64Numbers
	}
	v, err := eng.BuildTree(ts, conv)
	if err != nil {
		return nil, readError(err)
	}
	return v, nil
}

// DetectDuplicateKeys reports every duplicate key in a JSON document.
func DetectDuplicateKeys(data []byte) (Issues, error) {
	var iss Issues
	_, err := ReadTree(JSONBytes(data), DecodeOpt{
		OnDuplicateKey: Warn,
		OnWarning:      func(it Issue) { iss = AppendIssues(iss, it) },
	})
	if err != nil {
		return nil, err
	}
	return iss, nil
}

func readError(err error) Issues {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{NewIssue(ie.Path, ie.Code, nil, map[string]any{"detail": ie.Message})}
	}
	return Issues{Issue{Code: CodeParseError, Message: err.Error(), Cause: err}}
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
