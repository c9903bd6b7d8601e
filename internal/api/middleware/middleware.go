package middleware

import (
	"github.com/spf13/cobra"
)

// RunE обработчик команды cobra
type RunE func(cmd *cobra.Command, args []string) error

// Middleware оборачивает обработчик команды
type Middleware func(next RunE) RunE

// Apply оборачивает обработчики команды и всех ее подкоманд
func Apply(root *cobra.Command, mw Middleware) {
	if root.RunE != nil {
		root.RunE = mw(root.RunE)
	}
	for _, sub := range root.Commands() {
		Apply(sub, mw)
	}
}
