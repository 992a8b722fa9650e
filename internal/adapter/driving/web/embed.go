package web

import "embed"

// StaticFS holds the embedded browser glue served under /_gage/static/.
//
//go:embed static/*
var StaticFS embed.FS
