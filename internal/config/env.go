package config

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Environment variables read by Load.
const (
	EnvTesseractConfig = "TESSERACT_CONFIG"
	EnvOCRDPI          = "OCR_DPI"
	EnvYOLOWeights     = "YOLO_WEIGHTS"
	EnvYOLOConfig      = "YOLO_CONFIG"
	EnvYOLOClasses     = "YOLO_CLASSES"
	EnvYOLOConfidence  = "YOLO_CONFIDENCE"
	EnvFaceSimilarity  = "FACE_SIMILARITY"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ParseError reports an environment variable whose value could not be
// parsed into the setting's type.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type envReader struct {
	lookup LookupFunc
	logger log.FieldLogger
}

// raw reports a value only when the key is set. A set but empty value is
// returned as is, so numeric keys reject it and string keys keep "".
func (r envReader) raw(key string) (string, bool) {
	return r.lookup(key)
}

func (r envReader) setString(key string, dst *string) {
	v, ok := r.raw(key)
	if !ok {
		return
	}
	r.logger.WithFields(log.Fields{"key": key, "value": v}).Debug("environment override")
	*dst = v
}

func (r envReader) setInt(key string, dst *int) error {
	return readParsed(r, key, dst, strconv.Atoi)
}

func (r envReader) setFloat(key string, dst *float64) error {
	return readParsed(r, key, dst, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func readParsed[T any](r envReader, key string, dst *T, parse func(string) (T, error)) error {
	v, ok := r.raw(key)
	if !ok {
		return nil
	}
	parsed, err := parse(v)
	if err != nil {
		return &ParseError{Key: key, Value: v, Err: err}
	}
	r.logger.WithFields(log.Fields{"key": key, "value": parsed}).Debug("environment override")
	*dst = parsed
	return nil
}

func (r envReader) apply(c *Config) error {
	r.setString(EnvTesseractConfig, &c.TesseractConfig)
	r.setString(EnvYOLOWeights, &c.YOLOWeights)
	r.setString(EnvYOLOConfig, &c.YOLOConfig)
	r.setString(EnvYOLOClasses, &c.YOLOClasses)
	if err := r.setInt(EnvOCRDPI, &c.OCRDPI); err != nil {
		return err
	}
	if err := r.setFloat(EnvYOLOConfidence, &c.YOLOConfidence); err != nil {
		return err
	}
	return r.setFloat(EnvFaceSimilarity, &c.FaceSimilarityThreshold)
}
