package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/phpedit/pipelines"
)

type Module struct {
	dscope.Module
	Pipelines pipelines.Module
}
