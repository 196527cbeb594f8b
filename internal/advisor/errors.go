package advisor

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes the advisor can report.
type ErrorKind string

const (
	ErrorScope       ErrorKind = "scope"
	ErrorPolicy      ErrorKind = "policy"
	ErrorUpstream    ErrorKind = "upstream"
	ErrorEnrichment  ErrorKind = "enrichment"
	ErrorPersistence ErrorKind = "persistence"
)

var (
	ErrInvalidTopic      = errors.New("query is outside the roadtrip domain")
	ErrDurationExceeded  = errors.New("requested duration exceeds the maximum trip length")
	ErrNoResponse        = errors.New("no response generated")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrUpstream          = errors.New("upstream generation failed")
	ErrMissingEndpoints  = errors.New("start and end points are required")
)

// ValidationKind distinguishes the two user-input refusals.
type ValidationKind string

const (
	ValidationDurationExceeded ValidationKind = "duration_exceeded"
	ValidationInvalidTopic     ValidationKind = "invalid_topic"
)

const (
	invalidTopicMessage = "Je suis spécialisé dans les roadtrips et les voyages. " +
		"Pouvez-vous reformuler votre demande autour d'un itinéraire, d'une destination ou d'un conseil de route ?"
	durationExceededFormat = "La durée maximale d'un roadtrip est de %d jours. Vous avez demandé %d jours : " +
		"pouvez-vous raccourcir votre séjour ou le découper en plusieurs voyages ?"
	noResponseMessage = "Aucune réponse générée."
	technicalMessage  = "Erreur lors de la génération des recommandations."
)

// ValidationError is a refusal caused by the user's input. It is a conversational
// answer, not a transport failure.
type ValidationError struct {
	Kind              ValidationKind `json:"error_type"`
	Message           string         `json:"message"`
	MaxDuration       int            `json:"max_duration,omitempty"`
	RequestedDuration int            `json:"requested_duration,omitempty"`
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error {
	if e.Kind == ValidationDurationExceeded {
		return ErrDurationExceeded
	}
	return ErrInvalidTopic
}

// TechnicalError reports an upstream or internal failure. Cause is logged, never cached.
type TechnicalError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Detail  string    `json:"error,omitempty"`

	cause error
}

func (e *TechnicalError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

func (e *TechnicalError) Unwrap() error { return e.cause }

func invalidTopic() *Result {
	return &Result{
		Kind: KindValidation,
		Validation: &ValidationError{
			Kind:    ValidationInvalidTopic,
			Message: invalidTopicMessage,
		},
	}
}

func durationExceeded(requested int) *Result {
	return &Result{
		Kind: KindValidation,
		Validation: &ValidationError{
			Kind:              ValidationDurationExceeded,
			Message:           fmt.Sprintf(durationExceededFormat, MaxTripDays, requested),
			MaxDuration:       MaxTripDays,
			RequestedDuration: requested,
		},
	}
}

func technical(message string, cause error) *Result {
	te := &TechnicalError{Kind: ErrorUpstream, Message: message, cause: cause}
	if cause != nil {
		te.Detail = cause.Error()
	}
	return &Result{Kind: KindTechnical, Technical: te}
}
