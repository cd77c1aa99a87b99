package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfsim/program"
)

var _ = Describe("InstEmulator", func() {
	var (
		mockCtrl *gomock.Controller
		ie       instEmulator
		s        coreState
		out      bytes.Buffer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		out.Reset()
		ie = instEmulator{in: strings.NewReader(""), out: &out}
		s = coreState{
			PC:   0,
			Pos:  0,
			Tape: NewTape(),
			Code: make([]program.Instruction, 16),
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("Pointer Instructions", func() {
		It("should move the pointer forward", func() {
			err := ie.RunInst(program.Instruction{Opcode: program.OpIncPtr, Shift: 3}, &s)

			Expect(err).NotTo(HaveOccurred())
			Expect(s.Pos).To(Equal(3))
			Expect(s.PC).To(Equal(1))
		})

		It("should move the pointer to negative addresses", func() {
			err := ie.RunInst(program.Instruction{Opcode: program.OpDecPtr, Shift: 5}, &s)

			Expect(err).NotTo(HaveOccurred())
			Expect(s.Pos).To(Equal(-5))
		})

		It("should fail on overflow", func() {
			s.Pos = math.MaxInt - 1

			err := ie.RunInst(program.Instruction{Opcode: program.OpIncPtr, Shift: 2}, &s)

			Expect(err).To(MatchError(ErrPointerOverflow))
			Expect(s.Pos).To(Equal(math.MaxInt - 1))
			Expect(s.PC).To(Equal(0))
		})

		It("should fail on underflow", func() {
			s.Pos = math.MinInt

			err := ie.RunInst(program.Unit(program.OpDecPtr), &s)

			Expect(err).To(MatchError(ErrPointerUnderflow))
			Expect(s.Pos).To(Equal(math.MinInt))
		})
	})

	Context("Cell Instructions", func() {
		It("should add with wraparound", func() {
			s.Tape.Write(0, 250)

			err := ie.RunInst(program.Instruction{Opcode: program.OpIncVal, Delta: 10}, &s)

			Expect(err).NotTo(HaveOccurred())
			Expect(s.Tape.Read(0)).To(Equal(uint8(4)))
		})

		It("should subtract from an untouched cell", func() {
			s.Pos = 7

			err := ie.RunInst(program.Unit(program.OpDecVal), &s)

			Expect(err).NotTo(HaveOccurred())
			Expect(s.Tape.Read(7)).To(Equal(uint8(255)))
		})
	})

	Context("I/O Instructions", func() {
		It("should write the current cell", func() {
			s.Tape.Write(0, 'A')

			Expect(ie.RunInst(program.Unit(program.OpPutChar), &s)).To(Succeed())
			Expect(out.String()).To(Equal("A"))
		})

		It("should write zero for an untouched cell", func() {
			Expect(ie.RunInst(program.Unit(program.OpPutChar), &s)).To(Succeed())
			Expect(out.Bytes()).To(Equal([]byte{0}))
		})

		It("should report a failing sink", func() {
			w := NewMockWriter(mockCtrl)
			w.EXPECT().Write(gomock.Any()).Return(0, errors.New("disk full"))
			ie.out = w

			err := ie.RunInst(program.Unit(program.OpPutChar), &s)

			Expect(err).To(MatchError(ErrOutput))
			Expect(err.Error()).To(ContainSubstring("disk full"))
			Expect(s.PC).To(Equal(0))
		})

		It("should read one byte", func() {
			ie.in = strings.NewReader("xy")

			Expect(ie.RunInst(program.Unit(program.OpGetChar), &s)).To(Succeed())
			Expect(s.Tape.Read(0)).To(Equal(uint8('x')))
			Expect(s.PC).To(Equal(1))
		})

		It("should leave the cell unchanged at end of input", func() {
			s.Tape.Write(0, 42)

			Expect(ie.RunInst(program.Unit(program.OpGetChar), &s)).To(Succeed())
			Expect(s.Tape.Read(0)).To(Equal(uint8(42)))
			Expect(s.PC).To(Equal(1))
		})

		It("should report a failing source", func() {
			r := NewMockReader(mockCtrl)
			r.EXPECT().Read(gomock.Any()).Return(0, io.ErrClosedPipe)
			ie.in = r

			err := ie.RunInst(program.Unit(program.OpGetChar), &s)

			Expect(err).To(MatchError(ErrInput))
			Expect(errors.Is(err, io.ErrClosedPipe)).To(BeTrue())
		})

		It("should keep output failures raised while reading", func() {
			r := NewMockReader(mockCtrl)
			r.EXPECT().Read(gomock.Any()).
				Return(0, fmt.Errorf("%w: %w", ErrOutput, io.ErrClosedPipe))
			ie.in = r

			err := ie.RunInst(program.Unit(program.OpGetChar), &s)

			Expect(err).To(MatchError(ErrOutput))
			Expect(err).NotTo(MatchError(ErrInput))
			Expect(errors.Is(err, io.ErrClosedPipe)).To(BeTrue())
			Expect(s.PC).To(Equal(0))
		})

		It("should accept a byte delivered with EOF", func() {
			r := NewMockReader(mockCtrl)
			r.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
				p[0] = 'z'
				return 1, io.EOF
			})
			ie.in = r

			Expect(ie.RunInst(program.Unit(program.OpGetChar), &s)).To(Succeed())
			Expect(s.Tape.Read(0)).To(Equal(uint8('z')))
		})
	})

	Context("Loop Instructions", func() {
		It("should jump to the loop end on a zero cell", func() {
			s.PC = 2

			Expect(ie.RunInst(program.Instruction{Opcode: program.OpLoopStart, Target: 9}, &s)).To(Succeed())
			Expect(s.PC).To(Equal(10))
		})

		It("should enter the loop on a non-zero cell", func() {
			s.PC = 2
			s.Tape.Write(0, 1)

			Expect(ie.RunInst(program.Instruction{Opcode: program.OpLoopStart, Target: 9}, &s)).To(Succeed())
			Expect(s.PC).To(Equal(3))
		})

		It("should jump back to the loop start without advancing", func() {
			s.PC = 9

			Expect(ie.RunInst(program.Instruction{Opcode: program.OpLoopEnd, Target: 2}, &s)).To(Succeed())
			Expect(s.PC).To(Equal(2))
		})
	})

	It("should fail when the program counter cannot advance", func() {
		s.PC = math.MaxInt

		err := ie.RunInst(program.Unit(program.OpIncVal), &s)

		Expect(err).To(MatchError(ErrPCOverflow))
	})

	It("should panic on an unknown opcode", func() {
		Expect(func() {
			_ = ie.RunInst(program.Instruction{Opcode: program.Opcode(99)}, &s)
		}).To(Panic())
	})
})
