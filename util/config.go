/*
 * Copyright (c) tkc17.
 */
package util

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	currentConfig  *Config
	onceLoadConfig = &sync.Once{}
)

// Config is a wrapper over a viper instance with access
// serialized against concurrent writes to the config file.
type Config struct {
	rwLock        *sync.RWMutex
	viperInstance *viper.Viper
	filename      string
}

// CurrentConfig returns the agent config instance,
// creating the config file on first use.
func CurrentConfig() *Config {
	onceLoadConfig.Do(func() {
		config, err := ConfigWithName(DefaultConfig)
		if err != nil {
			panic(fmt.Sprintf("Error in initializing config - %s", err.Error()))
		}
		currentConfig = config
	})
	return currentConfig
}

// ConfigWithName opens or creates the named config file
// in the config directory.
func ConfigWithName(name string) (*Config, error) {
	configDir := ConfigDir()
	if err := os.MkdirAll(configDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("Error in creating config directory %s - %w", configDir, err)
	}
	filename := filepath.Join(configDir, name+".yml")
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if _, err = os.Create(filename); err != nil {
			return nil, fmt.Errorf("Error in creating config file %s - %w", filename, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("Error in accessing config file %s - %w", filename, err)
	}
	viperInstance := viper.New()
	viperInstance.SetConfigType("yml")
	viperInstance.AddConfigPath(configDir)
	viperInstance.SetConfigName(name)
	if err := viperInstance.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("Error in reading config file %s - %w", filename, err)
	}
	return &Config{
		rwLock:        &sync.RWMutex{},
		viperInstance: viperInstance,
		filename:      filename,
	}, nil
}

// FilePath returns the path to the config file.
func (config *Config) FilePath() string {
	return config.filename
}

// Present returns true if the key is set in the config.
func (config *Config) Present(key string) bool {
	config.rwLock.RLock()
	defer config.rwLock.RUnlock()
	return config.viperInstance.Get(key) != nil
}

// String returns the string value against the key.
// Returns empty string if the key is absent.
func (config *Config) String(key string) string {
	config.rwLock.RLock()
	defer config.rwLock.RUnlock()
	return config.viperInstance.GetString(key)
}

// Bool returns the bool value against the key.
func (config *Config) Bool(key string) bool {
	config.rwLock.RLock()
	defer config.rwLock.RUnlock()
	return config.viperInstance.GetBool(key)
}

// Float returns the float value against the key.
func (config *Config) Float(key string) float64 {
	config.rwLock.RLock()
	defer config.rwLock.RUnlock()
	return config.viperInstance.GetFloat64(key)
}

// Int returns the int value against the key.
// Returns 0 if the key is absent.
func (config *Config) Int(key string) int {
	config.rwLock.RLock()
	defer config.rwLock.RUnlock()
	return config.viperInstance.GetInt(key)
}

// Update creates or updates the value for the key
// and persists the config file.
func (config *Config) Update(key string, val any) error {
	config.rwLock.Lock()
	defer config.rwLock.Unlock()
	config.viperInstance.Set(key, val)
	return config.viperInstance.WriteConfig()
}

// Remove clears the value for the key in the config file.
// Viper cannot delete a key, so an empty value is written.
func (config *Config) Remove(key string) error {
	return config.Update(key, "")
}

// CompareAndUpdate updates the key to the new value only if the current
// value matches the old value. A nil old value means the key must be
// unset. It returns true if the config was updated.
func (config *Config) CompareAndUpdate(key string, oldVal, newVal any) (bool, error) {
	config.rwLock.Lock()
	defer config.rwLock.Unlock()
	currentVal := config.viperInstance.Get(key)
	if oldVal == nil {
		if currentVal != nil && fmt.Sprintf("%v", currentVal) != "" {
			return false, nil
		}
	} else if currentVal == nil || !reflect.DeepEqual(currentVal, oldVal) {
		return false, nil
	}
	config.viperInstance.Set(key, newVal)
	if err := config.viperInstance.WriteConfig(); err != nil {
		return false, err
	}
	return true, nil
}

// StoreCommandFlagString stores the value of a command flag against the
// config key. The flag value takes precedence over the existing config
// value, which in turn takes precedence over the default value. The
// validator, if given, can transform the value before it is stored.
func (config *Config) StoreCommandFlagString(
	ctx context.Context,
	cmd *cobra.Command,
	flagName string,
	key string,
	defaultValue *string,
	isRequired bool,
	validator func(string) (string, error),
) (string, error) {
	value, err := cmd.Flags().GetString(flagName)
	if err != nil {
		return "", err
	}
	if value == "" {
		value = config.String(key)
	}
	if value == "" && defaultValue != nil {
		value = *defaultValue
	}
	if value == "" {
		if isRequired {
			return "", fmt.Errorf("Value for flag %s is not set", flagName)
		}
		return "", nil
	}
	if validator != nil {
		value, err = validator(value)
		if err != nil {
			FileLogger().Errorf(ctx, "Invalid value for flag %s - %s", flagName, err.Error())
			return "", err
		}
	}
	if err := config.Update(key, value); err != nil {
		return "", err
	}
	return value, nil
}

// StoreCommandFlagBool stores the value of a bool command flag
// against the config key. The config value is retained when the
// flag is not passed on the command line.
func (config *Config) StoreCommandFlagBool(
	ctx context.Context,
	cmd *cobra.Command,
	flagName string,
	key string,
) (bool, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetBool(flagName)
		if err != nil {
			return false, err
		}
		if err := config.Update(key, value); err != nil {
			return false, err
		}
		return value, nil
	}
	return config.Bool(key), nil
}

// StoreCommandFlagInt stores the value of an int command flag against
// the config key with the same precedence as StoreCommandFlagString.
func (config *Config) StoreCommandFlagInt(
	ctx context.Context,
	cmd *cobra.Command,
	flagName string,
	key string,
	defaultValue *int,
	isRequired bool,
) (int, error) {
	value := 0
	if cmd.Flags().Changed(flagName) {
		flagValue, err := cmd.Flags().GetInt(flagName)
		if err != nil {
			return 0, err
		}
		value = flagValue
	}
	if value == 0 {
		value = config.Int(key)
	}
	if value == 0 && defaultValue != nil {
		value = *defaultValue
	}
	if value == 0 && isRequired {
		return 0, fmt.Errorf("Value for flag %s is not set", flagName)
	}
	if err := config.Update(key, value); err != nil {
		return 0, err
	}
	return value, nil
}
