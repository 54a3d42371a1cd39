package coapmsg

// validate applies §3's cross-field invariants. It is called at the
// end of Parse and at the start of Format, so both paths reject the
// same set of malformed messages. Applying it twice against the same
// Message always yields the same verdict: it only reads fields, never
// mutates.
func validate(msg *Message) error {
	if msg.Ver != 1 {
		return badMessage("version must be 1, got %d", msg.Ver)
	}
	if msg.tokenLen > maxTokenLen {
		return badMessage("token length %d exceeds 8", msg.tokenLen)
	}
	if !validCodeClass(msg.CodeClass) {
		return badMessage("code class %d is not one of {0,2,4,5}", msg.CodeClass)
	}

	if msg.IsEmpty() {
		if msg.Type == NonConfirmable {
			return badMessage("an Empty message must not be Non-confirmable")
		}
		if msg.tokenLen != 0 {
			return badMessage("an Empty message must not carry a token")
		}
		if msg.Options.Len() != 0 {
			return badMessage("an Empty message must not carry options")
		}
		if len(msg.Payload) != 0 {
			return badMessage("an Empty message must not carry a payload")
		}
	} else if msg.Type == Reset {
		return badMessage("a Reset message must be Empty")
	}

	prev := OptionNumber(0)
	for opt := msg.Options.First(); opt != nil; opt = opt.Next() {
		if opt.Num < prev {
			return badMessage("options are not in ascending order at option %d", opt.Num)
		}
		prev = opt.Num
	}

	return nil
}

func validCodeClass(class uint8) bool {
	switch class {
	case 0, 2, 4, 5:
		return true
	default:
		return false
	}
}
