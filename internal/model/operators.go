package model

// operators maps every overloadable-operator spelling to a descriptive
// snake-case identifier usable as a mock method name.
var operators = map[string]string{
	"operator,":   "comma_operator",
	"operator!":   "logical_not_operator",
	"operator!=":  "inequality_operator",
	"operator%":   "modulus_operator",
	"operator%=":  "modulus_assignment_operator",
	"operator&":   "address_of_or_bitwise_and_operator",
	"operator&&":  "logical_and_operator",
	"operator&=":  "bitwise_and_assignment_operator",
	"operator()":  "function_call_or_cast_operator",
	"operator*":   "multiplication_or_dereference_operator",
	"operator*=":  "multiplication_assignment_operator",
	"operator+":   "addition_or_unary_plus_operator",
	"operator++":  "increment1_operator",
	"operator+=":  "addition_assignment_operator",
	"operator-":   "subtraction_or_unary_negation_operator",
	"operator--":  "decrement1_operator",
	"operator-=":  "subtraction_assignment_operator",
	"operator->":  "member_selection_operator",
	"operator->*": "pointer_to_member_selection_operator",
	"operator/":   "division_operator",
	"operator/=":  "division_assignment_operator",
	"operator<":   "less_than_operator",
	"operator<<":  "left_shift_operator",
	"operator<<=": "left_shift_assignment_operator",
	"operator<=":  "less_than_or_equal_to_operator",
	"operator=":   "assignment_operator",
	"operator==":  "equality_operator",
	"operator>":   "greater_than_operator",
	"operator>=":  "greater_than_or_equal_to_operator",
	"operator>>":  "right_shift_operator",
	"operator>>=": "right_shift_assignment_operator",
	"operator[]":  "array_subscript_operator",
	"operator^":   "exclusive_or_operator",
	"operator^=":  "exclusive_or_assignment_operator",
	"operator|":   "bitwise_inclusive_or_operator",
	"operator|=":  "bitwise_inclusive_or_assignment_operator",
	"operator||":  "logical_or_operator",
	"operator~":   "complement_operator",
}

// OperatorName returns the descriptive identifier for an operator spelling.
func OperatorName(spelling string) (string, bool) {
	name, ok := operators[spelling]
	return name, ok
}

// OperatorNames returns a copy of the full operator table.
func OperatorNames() map[string]string {
	out := make(map[string]string, len(operators))
	for k, v := range operators {
		out[k] = v
	}
	return out
}
