// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/serdebench/pkg/codec"
	"github.com/ssargent/serdebench/pkg/generator"
)

// CodecFactory builds the codec for a kind
type CodecFactory func(kind codec.Kind) (codec.Codec, error)

// GeneratorFactory builds the generator for a dataset
type GeneratorFactory func(dataset generator.Dataset, seed int64) (generator.Generator, error)

// Container holds all the dependencies for the application
type Container struct {
	codecFactory     CodecFactory
	generatorFactory GeneratorFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		codecFactory:     codec.New,
		generatorFactory: generator.New,
	}
}

// GetCodecFactory returns the codec factory
func (c *Container) GetCodecFactory() CodecFactory {
	return c.codecFactory
}

// GetGeneratorFactory returns the generator factory
func (c *Container) GetGeneratorFactory() GeneratorFactory {
	return c.generatorFactory
}

// SetCodecFactory allows overriding the codec factory (for testing)
func (c *Container) SetCodecFactory(factory CodecFactory) {
	c.codecFactory = factory
}

// SetGeneratorFactory allows overriding the generator factory (for testing)
func (c *Container) SetGeneratorFactory(factory GeneratorFactory) {
	c.generatorFactory = factory
}
