package bayes

import "errors"

// Sentinel errors for the failure modes of training and persistence.
// Callers match them with errors.Is; the wrapped chain carries the offending
// path and the underlying cause.
var (
	// ErrRead reports a file that could not be read as text, either a
	// training sample or a stored model.
	ErrRead = errors.New("failed to read file")

	// ErrSerialize reports a model that could not be encoded to bytes.
	ErrSerialize = errors.New("failed to serialize model")

	// ErrDeserialize reports bytes that do not decode to a valid model.
	ErrDeserialize = errors.New("failed to deserialize model")

	// ErrWrite reports a destination that could not be created or written.
	ErrWrite = errors.New("failed to write model")

	// ErrUnknownAuthor reports a lookup for an author the model was not
	// trained on.
	ErrUnknownAuthor = errors.New("unknown author")

	// ErrEmptyDataset reports a training run over zero samples.
	ErrEmptyDataset = errors.New("empty dataset")
)
