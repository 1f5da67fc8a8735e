package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	xorstrgenVersion = "0.2.0"
	obfsviewVersion  = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	xorstrgen := NewAppBuild("xorstrgen", "cmd/xorstrgen", xorstrgenVersion)
	xorstrgen.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", xorstrgenVersion).
			CgoEnabled(false)
	})
	xorstrgen.Variant("windows", "amd64")
	xorstrgen.Variant("linux", "amd64")
	xorstrgen.Variant("linux", "arm64")
	xorstrgen.Variant("darwin", "amd64")
	xorstrgen.Variant("darwin", "arm64")
	b.ImportApp(xorstrgen)

	obfsview := NewAppBuild("obfsview", "cmd/obfsview", obfsviewVersion)
	obfsview.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", obfsviewVersion).
			CgoEnabled(false)
	})
	obfsview.Variant("windows", "amd64")
	obfsview.Variant("linux", "amd64")
	obfsview.Variant("linux", "arm64")
	obfsview.Variant("darwin", "amd64")
	obfsview.Variant("darwin", "arm64")
	b.ImportApp(obfsview)

	b.Execute()
}
