package diag

// Code is a dotted identifier from the fixed vocabulary in spec §4.6.
// Unlike a numeric code, the wire value IS the identifier string, so a
// baseline entry's `identifier` field can match it directly.
type Code string

// Level 0 — symbol existence and arity.
const (
	CodeFunctionNotFound       Code = "function.notFound"
	CodeClassNotFound          Code = "class.notFound"
	CodeMethodNotFound         Code = "method.notFound"
	CodeStaticMethodNotFound   Code = "staticMethod.notFound"
	CodeClassConstantNotFound  Code = "classConstant.notFound"
	CodeConstantNotFound       Code = "constant.notFound"
	CodeArgumentsCount         Code = "arguments.count"
	CodeReturnMissing          Code = "return.missing"
)

// Level 1 — variable definedness.
const (
	CodeVariableUndefined         Code = "variable.undefined"
	CodeVariablePossiblyUndefined Code = "variable.possiblyUndefined"
	CodeConstructorUnusedParam    Code = "constructor.unusedParameter"
)

// Level 2 — member resolution.
const (
	CodePropertyNotFound Code = "property.notFound"
	CodeMagicUndefined   Code = "magic.undefined"
)

// Level 3 — return/property type compatibility.
const (
	CodeReturnType     Code = "return.type"
	CodeAssignPropType Code = "assign.propertyType"
	CodeReturnVoid     Code = "return.void"
)

// Level 4 — dead code and narrowing redundancy.
const (
	CodeDeadCodeUnreachable     Code = "deadCode.unreachable"
	CodeInstanceofAlwaysFalse   Code = "instanceof.alwaysFalse"
	CodeBinaryOpInvalid         Code = "binaryOp.invalid"
	CodeAlreadyNarrowedType     Code = "function.alreadyNarrowedType"
	CodeFunctionResultUnused    Code = "function.resultUnused"
	CodeBooleanNotAlwaysFalse   Code = "booleanNot.alwaysFalse"
)

// Level 5 — argument type compatibility.
const (
	CodeArgumentType Code = "argument.type"
)

// Level 6 — missing type declarations.
const (
	CodeMissingTypeParameter     Code = "missingType.parameter"
	CodeMissingTypeReturn        Code = "missingType.return"
	CodeMissingTypeProperty      Code = "missingType.property"
	CodeMissingTypeIterableValue Code = "missingType.iterableValue"
	CodeMissingTypeGenerics      Code = "missingType.generics"
)

// Level 7 — union discipline.
const (
	CodeMethodNotFoundInUnion   Code = "method.notFoundInUnion"
	CodePropertyNotFoundInUnion Code = "property.notFoundInUnion"
)

// Level 8 — nullable discipline.
const (
	CodeNullableAccess Code = "nullable.access"
)

// Level 9/10 — mixed discipline.
const (
	CodeMixedExplicitUsage            Code = "mixed.explicitUsage"
	CodeMixedImplicitUsage            Code = "mixed.implicitUsage"
	CodeArgumentMixedToTyped          Code = "argument.mixedToTyped"
	CodeArgumentImplicitMixedToTyped  Code = "argument.implicitMixedToTyped"
	CodeEchoNonString                 Code = "echo.nonString"
	CodeVoidPure                      Code = "void.pure"
	CodeIssetVariable                 Code = "isset.variable"
	CodePropertyOnlyWritten            Code = "property.onlyWritten"
	CodeNewStatic                      Code = "new.static"
	CodeClassNameCase                  Code = "class.nameCase"
)

// Meta / infrastructure identifiers not in the strictness-level vocabulary
// but required by the engine's own contract (§4.2, §4.4, §6.5, §7).
const (
	CodeParseError          Code = "parse.error"
	CodeFixVerifyFailed     Code = "fix.verifyFailed"
	CodeIgnoredErrorUnmatch Code = "ignoredError.unmatched"
	CodeConfigTypeMismatch  Code = "config.typeMismatch"
	CodeRuleInternalError   Code = "rule.internalError"
	CodeCheckInternalError  Code = "check.internalError"
	CodeIOError             Code = "io.error"
)

// String returns the dotted identifier itself, satisfying fmt.Stringer.
func (c Code) String() string { return string(c) }
