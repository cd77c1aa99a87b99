package program

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ResolveLoops", func() {
	It("should pair nested loops", func() {
		insts := []Instruction{
			Unit(OpIncPtr),
			Unit(OpIncVal),
			Unit(OpLoopStart),
			Unit(OpDecPtr),
			Unit(OpLoopStart),
			Unit(OpDecVal),
			Unit(OpLoopEnd),
			Unit(OpPutChar),
			Unit(OpLoopEnd),
		}

		Expect(ResolveLoops(insts)).To(Succeed())
		Expect(insts[2]).To(Equal(Instruction{Opcode: OpLoopStart, Target: 8}))
		Expect(insts[4]).To(Equal(Instruction{Opcode: OpLoopStart, Target: 6}))
		Expect(insts[6]).To(Equal(Instruction{Opcode: OpLoopEnd, Target: 4}))
		Expect(insts[8]).To(Equal(Instruction{Opcode: OpLoopEnd, Target: 2}))
	})

	It("should span the whole program for a single outer loop", func() {
		insts := Tokenize("[>>>+++,---.<<<]")

		Expect(ResolveLoops(insts)).To(Succeed())
		last := len(insts) - 1
		Expect(insts[0].Target).To(Equal(last))
		Expect(insts[last].Target).To(Equal(0))
	})

	It("should pair every bracket with its syntactic match", func() {
		src := "[[][[]]][]"
		insts := Tokenize(src)

		Expect(ResolveLoops(insts)).To(Succeed())
		for i, inst := range insts {
			partner := insts[inst.Target]
			Expect(partner.Target).To(Equal(i))
			Expect(partner.Opcode).NotTo(Equal(inst.Opcode))
		}
		Expect(insts[0].Target).To(Equal(7))
		Expect(insts[3].Target).To(Equal(6))
		Expect(insts[8].Target).To(Equal(9))
	})

	It("should reject an unclosed loop", func() {
		insts := []Instruction{Unit(OpIncPtr), Unit(OpLoopStart), Unit(OpIncVal)}

		err := ResolveLoops(insts)
		Expect(err).To(MatchError(ErrUnmatchedOpen))
		Expect(err.Error()).To(ContainSubstring("first at instruction 1"))
	})

	It("should reject a loop end without a start", func() {
		insts := []Instruction{Unit(OpIncPtr), Unit(OpLoopEnd), Unit(OpIncVal)}

		err := ResolveLoops(insts)
		Expect(err).To(MatchError(ErrUnmatchedClose))
		Expect(err.Error()).To(ContainSubstring("instruction 1"))
	})

	It("should accept programs without loops", func() {
		Expect(ResolveLoops(nil)).To(Succeed())
		Expect(ResolveLoops(Tokenize("+-<>.,"))).To(Succeed())
	})
})

var _ = Describe("MaxLoopDepth", func() {
	It("should report nesting depth", func() {
		Expect(MaxLoopDepth(Tokenize("+-"))).To(Equal(0))
		Expect(MaxLoopDepth(Tokenize("[][[[]]]"))).To(Equal(3))
	})
})
