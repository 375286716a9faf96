//go:build parleydebug

package chatlist

const debugBuild = true
