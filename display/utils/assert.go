package utils

// Assert panics when the condition does not hold. The display code uses
// this for programming-invariant violations (inconsistent dirty tracking,
// impossible reflow spans), never for conditions external input can cause.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) == 1 {
			panic(message[0])
		}
		panic("failed assertion")
	}
}
