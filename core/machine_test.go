package core

import (
	"bytes"
	"errors"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/bfsim/program"
)

func mustCompile(src string) program.Program {
	prog, err := program.Compile(src, program.DefaultCompileOptions())
	Expect(err).NotTo(HaveOccurred())
	return prog
}

var _ = Describe("Machine", func() {
	var out bytes.Buffer

	BeforeEach(func() {
		out.Reset()
	})

	It("should halt immediately on an empty program", func() {
		m := NewMachine(mustCompile("just a comment"), strings.NewReader(""), &out)

		halted, err := m.Step()

		Expect(err).NotTo(HaveOccurred())
		Expect(halted).To(BeTrue())
		Expect(m.Steps()).To(BeZero())
	})

	It("should increment two input characters", func() {
		src := "++[>[>],+[<]>-]>[.>]"
		m := NewMachine(mustCompile(src), strings.NewReader("31abc"), &out)

		Expect(m.Run()).To(Succeed())
		Expect(out.Bytes()).To(Equal([]byte("42")))
		Expect(m.Halted()).To(BeTrue())
	})

	It("should give the same result without the optimizer", func() {
		src := "++[>[>],+[<]>-]>[.>]"
		prog, err := program.Compile(src, program.CompileOptions{})
		Expect(err).NotTo(HaveOccurred())

		m := NewMachine(prog, strings.NewReader("31"), &out)

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(Equal("42"))
	})

	It("should print hello world", func() {
		src := "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]" +
			">>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."
		m := NewMachine(mustCompile(src), strings.NewReader(""), &out)

		Expect(m.Run()).To(Succeed())
		Expect(out.String()).To(Equal("Hello World!\n"))
	})

	It("should keep the cell when reading past the end of input", func() {
		m := NewMachine(mustCompile("+++++,,."), strings.NewReader(""), &out)

		Expect(m.Run()).To(Succeed())
		Expect(out.Bytes()).To(Equal([]byte{5}))
	})

	It("should walk far from the origin", func() {
		src := strings.Repeat("<", 100000) + "+" + strings.Repeat(">", 200000) + "-"
		m := NewMachine(mustCompile(src), strings.NewReader(""), &out)

		Expect(m.Run()).To(Succeed())
		Expect(m.Pos()).To(Equal(100000))
		Expect(m.Tape().Read(-100000)).To(Equal(uint8(1)))
		Expect(m.Tape().Read(100000)).To(Equal(uint8(255)))
		Expect(m.Tape().Len()).To(Equal(2))
	})

	It("should stop at the first failing instruction", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		w := NewMockWriter(mockCtrl)
		w.EXPECT().Write([]byte{1}).Return(1, nil)
		w.EXPECT().Write([]byte{2}).Return(0, errors.New("broken pipe"))

		m := NewMachine(mustCompile("+.+.+."), strings.NewReader(""), w)

		err := m.Run()
		Expect(err).To(MatchError(ErrOutput))
		Expect(m.PC()).To(Equal(3))
		Expect(m.Steps()).To(Equal(uint64(3)))
	})

	It("should report executed instructions to hooks", func() {
		counter := NewInstCounter()
		m := NewMachine(mustCompile("+++[>++<-]"), strings.NewReader(""), &out)
		m.AcceptHook(counter)
		m.AcceptHook(InstTracer{})

		Expect(m.Run()).To(Succeed())
		Expect(m.Tape().Read(1)).To(Equal(uint8(6)))
		Expect(counter.Count(program.OpLoopStart)).To(Equal(uint64(4)))
		Expect(counter.Count(program.OpLoopEnd)).To(Equal(uint64(3)))
		Expect(counter.Total()).To(Equal(m.Steps()))
	})
})
