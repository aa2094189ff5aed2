package event

import "github.com/viant/custard/service/messaging/memory"

type Option func(s *Service)

// WithNewMemoryQueueConfig sets the per-queue memory configuration.
func WithNewMemoryQueueConfig(newConfig func(name string) memory.Config) Option {
	return func(s *Service) {
		s.memNewQueueConfig = newConfig
	}
}
