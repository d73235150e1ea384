package main

import (
	"github.com/phpray/phpray/internal/check"
	"github.com/phpray/phpray/internal/checks/argscount"
	"github.com/phpray/phpray/internal/checks/argumenttype"
	"github.com/phpray/phpray/internal/checks/classexists"
	"github.com/phpray/phpray/internal/checks/deadcode"
	"github.com/phpray/phpray/internal/checks/functionexists"
	"github.com/phpray/phpray/internal/checks/memberaccess"
	"github.com/phpray/phpray/internal/checks/missingtype"
	"github.com/phpray/phpray/internal/checks/mixeddiscipline"
	"github.com/phpray/phpray/internal/checks/nullableaccess"
	"github.com/phpray/phpray/internal/checks/returntype"
	"github.com/phpray/phpray/internal/checks/uniondiscipline"
	"github.com/phpray/phpray/internal/checks/vardef"
	"github.com/phpray/phpray/internal/rule"
	"github.com/phpray/phpray/internal/rules/arraypush"
	"github.com/phpray/phpray/internal/rules/issetcoalesce"
)

// newRuleRegistry returns every rule the binary ships, in registration
// order. A new rule package only needs to be added here to be picked up
// by every subcommand's preset/category selection.
func newRuleRegistry() *rule.Registry {
	reg := rule.NewRegistry()
	reg.Register(arraypush.New())
	reg.Register(issetcoalesce.New())
	return reg
}

// newCheckRegistry returns every check the binary ships, indexed by
// strictness level.
func newCheckRegistry() *check.Registry {
	reg := check.NewRegistry()
	reg.Register(functionexists.New())
	reg.Register(argscount.New())
	reg.Register(classexists.New())
	reg.Register(vardef.New())
	reg.Register(memberaccess.New())
	reg.Register(returntype.New())
	reg.Register(deadcode.New())
	reg.Register(argumenttype.New())
	reg.Register(missingtype.New())
	reg.Register(uniondiscipline.New())
	reg.Register(nullableaccess.New())
	reg.Register(mixeddiscipline.NewExplicit())
	reg.Register(mixeddiscipline.NewImplicit())
	return reg
}
