// Package files keeps Scout's generated directories out of version control.
package files
