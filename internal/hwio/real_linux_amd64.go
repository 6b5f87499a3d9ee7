//go:build linux && cgo && amd64

package hwio

/*
#include <stdint.h>

static inline uint8_t inb_impl(uint16_t port) {
    uint8_t value;
    __asm__ __volatile__("inb %1, %0" : "=a"(value) : "Nd"(port));
    return value;
}

static inline void outb_impl(uint16_t port, uint8_t value) {
    __asm__ __volatile__("outb %0, %1" : : "a"(value), "Nd"(port));
}

static inline void cli_impl(void) {
    __asm__ __volatile__("cli" ::: "memory");
}

static inline void sti_impl(void) {
    __asm__ __volatile__("sti" ::: "memory");
}

static inline void hlt_impl(void) {
    __asm__ __volatile__("hlt");
}

// descptr mirrors the GDTR/IDTR operand lgdt/lidt expect: a 16-bit
// limit immediately followed by a 32-bit linear base, unaligned.
struct descptr {
    uint16_t limit;
    uint32_t base;
} __attribute__((packed));

static inline void lgdt_impl(uint16_t limit, uint32_t base) {
    struct descptr p = { limit, base };
    __asm__ __volatile__("lgdt %0" : : "m"(p));
}

static inline void lidt_impl(uint16_t limit, uint32_t base) {
    struct descptr p = { limit, base };
    __asm__ __volatile__("lidt %0" : : "m"(p));
}
*/
import "C"

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Real is the privileged x86 port-I/O and CPU-control backend. It
// issues the actual inb/outb/cli/sti/hlt/lgdt/lidt instructions via
// cgo, the same way internal/cpu's serial/RTC/PIC/GDT/IDT code runs
// when this module is linked into the freestanding kernel rather than
// hosted under Linux. Port I/O and IF masking work from ring 3 once
// iopl(3) is granted; hlt/lgdt/lidt remain ring-0-only on a hosted
// kernel and fault if actually executed there — this backend exists
// so the same Go source builds and runs unmodified on bare metal,
// where CPL is 0. NewReal fails loudly if iopl(3) is refused instead
// of silently falling back to a degraded mode.
type Real struct{}

// NewReal requests I/O privilege level 3 for the calling thread and
// returns a Real backend on success.
func NewReal() (Hardware, error) {
	if err := unix.Iopl(3); err != nil {
		return nil, fmt.Errorf("hwio: iopl(3): %w (real port I/O requires CAP_SYS_RAWIO)", err)
	}
	return &Real{}, nil
}

func (*Real) InB(port uint16) uint8 {
	return uint8(C.inb_impl(C.uint16_t(port)))
}

func (*Real) OutB(port uint16, value uint8) {
	C.outb_impl(C.uint16_t(port), C.uint8_t(value))
}

func (*Real) DisableInterrupts() {
	C.cli_impl()
}

func (*Real) EnableInterrupts() {
	C.sti_impl()
}

func (*Real) Halt() {
	C.hlt_impl()
}

func (*Real) LoadGDT(base uint32, limit uint16) {
	C.lgdt_impl(C.uint16_t(limit), C.uint32_t(base))
}

func (*Real) LoadIDT(base uint32, limit uint16) {
	C.lidt_impl(C.uint16_t(limit), C.uint32_t(base))
}
