package config

import "errors"

var (
	// ErrLoadConfig возвращается, если файл конфигурации не прочитан
	ErrLoadConfig = errors.New("config: failed to load config file")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
