package config

import "github.com/muurk/tmcatcher/internal/wizard"

var _ wizard.PhoneStore = (*Config)(nil)
