package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// CleanPath trims whitespace and surrounding quotes from a typed or pasted path
func CleanPath(path string) string {
	return strings.Trim(strings.TrimSpace(path), `"'`)
}

// ValidateExistingDir accepts only paths of existing directories
func ValidateExistingDir(ans interface{}) error {
	path, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a folder path")
	}

	path = CleanPath(path)
	if path == "" {
		return fmt.Errorf("folder path is required")
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("the folder '%s' doesn't exist or is not a folder", path)
	}
	return nil
}

// ValidateOutputDir accepts paths that already are, or can become, directories
func ValidateOutputDir(ans interface{}) error {
	path, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a folder path")
	}

	path = CleanPath(path)
	if path == "" {
		return fmt.Errorf("folder path is required")
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("error creating folder: %w", err)
	}
	return nil
}

// AskFolder prompts until the answer passes validate
func AskFolder(message string, validate survey.Validator) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(validate)); err != nil {
		return "", fmt.Errorf("folder prompt failed: %w", err)
	}
	return CleanPath(answer), nil
}
