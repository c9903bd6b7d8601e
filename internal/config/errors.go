package config

import "errors"

var (
	// ErrDecodeFile возвращается, если TOML-файл не удалось разобрать
	ErrDecodeFile = errors.New("config: failed to decode config file")

	// ErrDotEnv возвращается, если .env существует, но не читается
	ErrDotEnv = errors.New("config: failed to load .env file")

	// ErrParseEnv возвращается при некорректном значении переменной окружения
	ErrParseEnv = errors.New("config: failed to parse environment")

	// ErrInvalidConfig возвращается, если значение недопустимо
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
