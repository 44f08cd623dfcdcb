/*
Copyright 2024 Lobmap Authors. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package lob

import (
	"fmt"

	"github.com/lobmap/lobmap/logger"
	"github.com/lobmap/lobmap/metrics"
)

const defaultReadBufferSize = 4096

type Options struct {
	pool           Pool
	caps           Capabilities
	logger         logger.Logger
	metrics        metrics.ProtocolMetrics
	readBufferSize int
}

func DefaultOptions() *Options {
	return &Options{
		logger:         logger.NewNopLogger(),
		metrics:        metrics.NewNopProtocolMetrics(),
		readBufferSize: defaultReadBufferSize,
	}
}

func (opts *Options) Validate() error {
	if opts == nil {
		return fmt.Errorf("%w: nil options", ErrInvalidOptions)
	}

	if opts.pool == nil {
		return fmt.Errorf("%w: nil pool", ErrInvalidOptions)
	}

	if opts.caps == nil {
		return fmt.Errorf("%w: nil backend capabilities", ErrInvalidOptions)
	}

	if opts.logger == nil {
		return fmt.Errorf("%w: nil logger", ErrInvalidOptions)
	}

	if opts.metrics == nil {
		return fmt.Errorf("%w: nil metrics", ErrInvalidOptions)
	}

	if opts.readBufferSize <= 0 {
		return fmt.Errorf("%w: invalid ReadBufferSize value", ErrInvalidOptions)
	}

	return nil
}

func (opts *Options) WithPool(pool Pool) *Options {
	opts.pool = pool
	return opts
}

func (opts *Options) WithCapabilities(caps Capabilities) *Options {
	opts.caps = caps
	return opts
}

func (opts *Options) WithLogger(logger logger.Logger) *Options {
	opts.logger = logger
	return opts
}

func (opts *Options) WithMetrics(metrics metrics.ProtocolMetrics) *Options {
	opts.metrics = metrics
	return opts
}

func (opts *Options) WithReadBufferSize(readBufferSize int) *Options {
	opts.readBufferSize = readBufferSize
	return opts
}
