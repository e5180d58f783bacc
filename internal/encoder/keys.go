package encoder

// Reserved dictionary keys shared by every encoder and its callers.
const (
	// KeyObs holds the observation tensor.
	KeyObs = "obs"
	// KeySeqLens holds per-sequence lengths. Accepted, never required.
	KeySeqLens = "seq_lens"
	// KeyStateIn holds the recurrent state passed into a forward call.
	KeyStateIn = "state_in"
	// KeyStateOut holds the recurrent state produced by a forward call.
	KeyStateOut = "state_out"
	// KeyEncoderOut holds the encoded representation.
	KeyEncoderOut = "encoder_out"

	// KeyHidden and KeyCell name the LSTM state tensors under state_in/state_out.
	KeyHidden = "h"
	KeyCell   = "c"

	// KeyActor and KeyCritic hold the sub-encoder outputs of an actor-critic encoder.
	KeyActor  = "actor"
	KeyCritic = "critic"
)
