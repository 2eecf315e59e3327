package document

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SanitizeFilename", func() {
	It("leaves a safe name untouched", func() {
		Expect(SanitizeFilename("QF410_SYD-MEL.pdf")).To(Equal("QF410_SYD-MEL.pdf"))
	})

	It("turns whitespace into underscores", func() {
		Expect(SanitizeFilename("boarding pass.pdf")).To(Equal("boarding_pass.pdf"))
	})

	It("strips symbols before collapsing whitespace", func() {
		Expect(SanitizeFilename("Tom & Jerry's (copy).pdf")).To(Equal("Tom_Jerrys_copy.pdf"))
	})

	It("replaces unsafe characters with dashes", func() {
		Expect(SanitizeFilename("itinerary*final?.pdf")).To(Equal("itinerary-final-.pdf"))
	})

	It("collapses dash runs", func() {
		Expect(SanitizeFilename("a--b---c.pdf")).To(Equal("a-b-c.pdf"))
	})
})

var _ = Describe("LocalStorage", func() {
	var (
		basePath string
		storage  *LocalStorage
	)

	BeforeEach(func() {
		basePath = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(filepath.Join(basePath, "blobs"))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Put", func() {
		It("creates category directories as needed", func() {
			err := storage.Put("flights/QF410.pdf", []byte("pdf data"), "application/pdf")
			Expect(err).NotTo(HaveOccurred())

			data, readErr := os.ReadFile(filepath.Join(basePath, "blobs", "flights", "QF410.pdf"))
			Expect(readErr).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("pdf data"))
		})

		It("replaces an existing blob", func() {
			Expect(storage.Put("flights/QF410.pdf", []byte("old"), "application/pdf")).To(Succeed())
			Expect(storage.Put("flights/QF410.pdf", []byte("new"), "application/pdf")).To(Succeed())

			data, err := os.ReadFile(filepath.Join(basePath, "blobs", "flights", "QF410.pdf"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("new"))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(storage.Put("flights/QF410.pdf", []byte("a"), "application/pdf")).To(Succeed())
			Expect(storage.Put("hotels/Hilton.pdf", []byte("b"), "application/pdf")).To(Succeed())
		})

		It("returns every stored path with an empty prefix", func() {
			paths, err := storage.List("")
			Expect(err).NotTo(HaveOccurred())
			Expect(paths).To(ConsistOf("flights/QF410.pdf", "hotels/Hilton.pdf"))
		})

		It("filters by prefix", func() {
			paths, err := storage.List("flights/")
			Expect(err).NotTo(HaveOccurred())
			Expect(paths).To(ConsistOf("flights/QF410.pdf"))
		})

		It("returns an empty list when nothing matches", func() {
			paths, err := storage.List("insurance/")
			Expect(err).NotTo(HaveOccurred())
			Expect(paths).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			Expect(storage.Put("flights/QF410.pdf", []byte("a"), "application/pdf")).To(Succeed())
			Expect(storage.Put("hotels/Hilton.pdf", []byte("b"), "application/pdf")).To(Succeed())
		})

		It("removes the named blobs", func() {
			err := storage.Delete([]string{"flights/QF410.pdf", "hotels/Hilton.pdf"})
			Expect(err).NotTo(HaveOccurred())

			paths, listErr := storage.List("")
			Expect(listErr).NotTo(HaveOccurred())
			Expect(paths).To(BeEmpty())
		})

		It("fails on a missing path", func() {
			err := storage.Delete([]string{"flights/nonexistent.pdf"})
			Expect(err).To(HaveOccurred())
		})
	})
})
