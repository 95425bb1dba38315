package tokenizer

import (
	"fmt"

	"github.com/pkg/errors"
)

//tokenizer
type Tokenizer interface {
	// Tokenize calls emit for every token of content, in order.
	Tokenize(content string, emit func(Token))
}

type Constructor func(config map[string]interface{}) (Tokenizer, error)

var registeredConstructors = make(map[string]Constructor)

// RegisterConstructor is called from the init of tokenizer implementations.
func RegisterConstructor(_type string, c Constructor) {
	registeredConstructors[_type] = c
}

//tokenizer Registry
type Registry struct {
	tokenizerMap map[string]Constructor
}

func NewRegistry() *Registry {
	ret := &Registry{
		tokenizerMap: make(map[string]Constructor),
	}
	for typ, c := range registeredConstructors {
		ret.RegisterTokenizer(typ, c)
	}
	return ret
}

func (r *Registry) RegisterTokenizer(_type string, constructor Constructor) error {
	_, exist := r.tokenizerMap[_type]
	if exist {
		return errors.New("tokenizer type " + _type + " has been existed")
	}
	r.tokenizerMap[_type] = constructor
	return nil
}

func (r *Registry) NewTokenizer(_type string, config map[string]interface{}) (Tokenizer, error) {
	constructor, exist := r.tokenizerMap[_type]
	if !exist {
		return nil, fmt.Errorf("tokenizer type unsupported : %v", _type)
	}
	tokenizer, err := constructor(config)
	return tokenizer, err
}

// Collect runs t over content and returns every token.
func Collect(t Tokenizer, content string) Tokens {
	var out Tokens
	t.Tokenize(content, func(tok Token) {
		out = append(out, tok)
	})
	return out
}
