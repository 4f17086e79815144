package transcript

import "errors"

var (
	// ErrLookupMiss marks a reference lookup that found nothing (tenure date,
	// gender entry, docket row). Callers recover with an "unknown" value.
	ErrLookupMiss = errors.New("lookup miss")

	// ErrMalformedCase marks a case that cannot be processed as-is, such as
	// one without utterances or without an argument date.
	ErrMalformedCase = errors.New("malformed case")

	// ErrDataIntegrity marks a violated uniqueness assumption. It is fatal:
	// downstream statistics assume every record is unique.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrBadID is returned when an utterance ID does not follow the
	// "<conversation>__<section>_<seq>" layout.
	ErrBadID = errors.New("malformed utterance id")
)
