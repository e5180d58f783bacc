package encoder

import (
	"github.com/pkg/errors"

	"github.com/born-ml/born-rl/internal/tensor"
)

// Build validates cfg and constructs the matching encoder on backend.
//
// Example:
//
//	enc, err := encoder.Build(encoder.DefaultMLPConfig(8, 16), cpu.New())
//	out, err := enc.Forward(nested.New().Set(encoder.KeyObs, obs))
func Build[B tensor.Backend](cfg Config, backend B) (Model[B], error) {
	if cfg == nil {
		return nil, errors.New("nil encoder config")
	}
	return build(cfg, backend, cfg.Kind())
}

func build[B tensor.Backend](cfg Config, backend B, name string) (Model[B], error) {
	var (
		m   Model[B]
		err error
	)
	switch c := cfg.(type) {
	case MLPConfig:
		m, err = asModel[B](newMLPEncoder(c, backend, name))
	case *MLPConfig:
		m, err = asModel[B](newMLPEncoder(*c, backend, name))
	case CNNConfig:
		m, err = asModel[B](newCNNEncoder(c, backend, name))
	case *CNNConfig:
		m, err = asModel[B](newCNNEncoder(*c, backend, name))
	case LSTMConfig:
		m, err = asModel[B](newLSTMEncoder(c, backend, name))
	case *LSTMConfig:
		m, err = asModel[B](newLSTMEncoder(*c, backend, name))
	case ActorCriticConfig:
		m, err = asModel[B](newActorCriticEncoder(c, backend, name))
	case *ActorCriticConfig:
		m, err = asModel[B](newActorCriticEncoder(*c, backend, name))
	default:
		return nil, errors.Errorf("unsupported encoder config %T", cfg)
	}
	return m, err
}

// asModel keeps a failed constructor from yielding a non-nil Model holding
// a nil pointer.
func asModel[B tensor.Backend, E Model[B]](e E, err error) (Model[B], error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}
