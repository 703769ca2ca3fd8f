package object

// String renders the abstract error kind name, per the taxonomy in the
// runtime specification §7.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidObject:
		return "InvalidObject"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrOperatorNotSupported:
		return "OperatorNotSupported"
	case ErrMethodNotFound:
		return "MethodNotFound"
	case ErrFieldNotFound:
		return "FieldNotFound"
	case ErrNameNotFound:
		return "NameNotFound"
	case ErrArityMismatch:
		return "ArityMismatch"
	case ErrAssignmentToImmutable:
		return "AssignmentToImmutable"
	case ErrOutOfBounds:
		return "OutOfBounds"
	case ErrDivisionByZero:
		return "DivisionByZero"
	case ErrDomainError:
		return "DomainError"
	case ErrImportError:
		return "ImportError"
	case ErrUserError:
		return "UserError"
	case ErrInternalError:
		return "InternalError"
	case ErrObjectCreation:
		return "ObjectCreationError"
	default:
		return "UnknownError"
	}
}
