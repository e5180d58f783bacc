package encoder

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-rl/internal/nested"
	"github.com/born-ml/born-rl/internal/nn"
	"github.com/born-ml/born-rl/internal/parallel"
	"github.com/born-ml/born-rl/internal/spec"
	"github.com/born-ml/born-rl/internal/tensor"
)

// ActorCriticEncoder routes one input through an actor encoder and a critic
// encoder and returns {actor: <actor output>, critic: <critic output>}.
//
// In shared mode actor and critic are the same instance; it still runs once
// per path. The composite does not validate inputs itself: each sub-encoder
// validates its own, and its violation is returned unchanged.
type ActorCriticEncoder[B tensor.Backend] struct {
	contract
	config   ActorCriticConfig
	actor    Model[B]
	critic   Model[B]
	parallel bool
}

// NewActorCriticEncoder validates cfg, builds both sub-encoders and wraps them.
func NewActorCriticEncoder[B tensor.Backend](cfg ActorCriticConfig, backend B) (*ActorCriticEncoder[B], error) {
	return newActorCriticEncoder(cfg, backend, cfg.Kind())
}

func newActorCriticEncoder[B tensor.Backend](cfg ActorCriticConfig, backend B, name string) (*ActorCriticEncoder[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s config", cfg.Kind())
	}

	if cfg.Shared {
		shared, err := build(cfg.Actor, backend, "shared")
		if err != nil {
			return nil, err
		}
		e, err := NewActorCriticFrom(name, shared, shared, cfg.Parallel)
		if err != nil {
			return nil, err
		}
		e.config = cfg
		return e, nil
	}

	actor, err := build(cfg.Actor, backend, KeyActor)
	if err != nil {
		return nil, errors.Wrap(err, KeyActor)
	}
	criticCfg := cfg.Critic
	if criticCfg == nil {
		criticCfg = cfg.Actor
	}
	critic, err := build(criticCfg, backend, KeyCritic)
	if err != nil {
		return nil, errors.Wrap(err, KeyCritic)
	}
	e, err := NewActorCriticFrom(name, actor, critic, cfg.Parallel)
	if err != nil {
		return nil, err
	}
	e.config = cfg
	return e, nil
}

// NewActorCriticFrom wraps already built encoders. Passing the same encoder
// twice gives shared mode. Both encoders read the same inputs, so it fails
// when no single input can satisfy both input specs, e.g. recurrent encoders
// whose states differ in size.
func NewActorCriticFrom[B tensor.Backend](name string, actor, critic Model[B], parallel bool) (*ActorCriticEncoder[B], error) {
	inputs, err := spec.Merge(actor.InputSpecs(), critic.InputSpecs())
	if err != nil {
		return nil, errors.Wrapf(err, "actor %s and critic %s input specs conflict", actor.Name(), critic.Name())
	}
	e := &ActorCriticEncoder[B]{
		contract: contract{
			name:   name,
			inputs: inputs,
			outputs: spec.NewDict().
				Set(KeyActor, spec.Nested(actor.OutputSpecs())).
				Set(KeyCritic, spec.Nested(critic.OutputSpecs())),
		},
		config: ActorCriticConfig{
			Shared:   actor == critic,
			Parallel: parallel,
		},
		actor:    actor,
		critic:   critic,
		parallel: parallel,
	}
	klog.V(2).InfoS("Built encoder", "encoder", name, "kind", e.config.Kind(),
		"actor", actor.Name(), "critic", critic.Name(), "shared", e.Shared(), "parallel", parallel,
		"parameters", e.NumParameters())
	return e, nil
}

// Config returns the encoder's configuration.
func (e *ActorCriticEncoder[B]) Config() ActorCriticConfig {
	return e.config
}

// Shared reports whether actor and critic are the same instance.
func (e *ActorCriticEncoder[B]) Shared() bool {
	return e.actor == e.critic
}

// Actor returns the actor encoder.
func (e *ActorCriticEncoder[B]) Actor() Model[B] {
	return e.actor
}

// Critic returns the critic encoder.
func (e *ActorCriticEncoder[B]) Critic() Model[B] {
	return e.critic
}

// InitialState merges the initial states of both encoders, actor first.
// Their input specs agree, so keys present in both have the same shape.
func (e *ActorCriticEncoder[B]) InitialState(batchSize int) *nested.Dict {
	actor := e.actor.InitialState(batchSize)
	if e.Shared() {
		return actor
	}
	return nested.Merge(actor, e.critic.InitialState(batchSize))
}

// Forward runs inputs through both encoders. With Parallel set the two calls
// run concurrently; if both fail, the actor's error is returned.
func (e *ActorCriticEncoder[B]) Forward(inputs *nested.Dict) (*nested.Dict, error) {
	var actorOut, criticOut *nested.Dict
	runActor := func() (err error) {
		actorOut, err = e.actor.Forward(inputs)
		return err
	}
	runCritic := func() (err error) {
		criticOut, err = e.critic.Forward(inputs)
		return err
	}

	klog.V(3).InfoS("Routing inputs", "encoder", e.name, "actor", e.actor.Name(), "critic", e.critic.Name(), "parallel", e.parallel)
	if e.parallel {
		if err := parallel.Run(runActor, runCritic); err != nil {
			return nil, err
		}
	} else {
		if err := runActor(); err != nil {
			return nil, err
		}
		if err := runCritic(); err != nil {
			return nil, err
		}
	}

	out := nested.New().
		SetDict(KeyActor, actorOut).
		SetDict(KeyCritic, criticOut)
	if err := e.checkOutputs(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Parameters returns the actor's parameters prefixed "actor." and the
// critic's prefixed "critic.", or once prefixed "shared." in shared mode.
func (e *ActorCriticEncoder[B]) Parameters() []*nn.Parameter[B] {
	if e.Shared() {
		return nn.Prefixed("shared", e.actor.Parameters())
	}
	return append(
		nn.Prefixed(KeyActor, e.actor.Parameters()),
		nn.Prefixed(KeyCritic, e.critic.Parameters())...,
	)
}

// NumParameters counts shared parameters once.
func (e *ActorCriticEncoder[B]) NumParameters() int {
	return nn.CountParameters(e.Parameters())
}
