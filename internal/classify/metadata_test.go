package classify

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExtractMetadata", func() {
	var (
		text     string
		category Category
		filename string
		meta     Metadata
	)

	BeforeEach(func() {
		text = ""
		category = CategoryMisc
		filename = "document.pdf"
	})

	JustBeforeEach(func() {
		meta = ExtractMetadata(text, category, filename)
	})

	Describe("passenger extraction", func() {
		When("a labeled mixed-case name is present", func() {
			BeforeEach(func() {
				text = "Passenger: John Smith\nSeat 12A"
			})

			It("extracts the name", func() {
				Expect(meta.Passengers()).To(Equal([]string{"John Smith"}))
			})
		})

		When("the same person appears in both strategies", func() {
			BeforeEach(func() {
				text = "Passenger: John Smith\nBoarding pass for MR JOHN SMITH"
			})

			It("deduplicates to a single canonical name", func() {
				Expect(meta.Passengers()).To(Equal([]string{"John Smith"}))
			})
		})

		When("an ALL-CAPS name runs into the next passenger block", func() {
			BeforeEach(func() {
				text = "MR SOHIL GUPTA MS RACHNA RACHNA"
			})

			It("truncates at the embedded title", func() {
				Expect(meta.Passengers()).To(Equal([]string{"Sohil Gupta"}))
			})
		})

		When("a titled name has only one word", func() {
			BeforeEach(func() {
				text = "DR WATSON"
			})

			It("is rejected", func() {
				Expect(meta.Passengers()).To(BeEmpty())
			})
		})

		When("more than four passengers are listed", func() {
			BeforeEach(func() {
				text = "Passenger: Alice Brown\n" +
					"Passenger: Bob Carter\n" +
					"Passenger: Carol Davis\n" +
					"Passenger: Dan Evans\n" +
					"Passenger: Erin Fox\n"
			})

			It("caps the list at four", func() {
				Expect(meta.Passengers()).To(Equal([]string{
					"Alice Brown", "Bob Carter", "Carol Davis", "Dan Evans",
				}))
			})
		})

		When("there are no names", func() {
			BeforeEach(func() {
				text = "no names here"
			})

			It("omits the passengers key entirely", func() {
				Expect(meta).NotTo(HaveKey("passengers"))
			})
		})
	})

	Describe("flights", func() {
		BeforeEach(func() {
			category = CategoryFlights
		})

		When("the text carries the full flight details", func() {
			BeforeEach(func() {
				text = "Qantas Airways\n" +
					"Flight QF410 SYD -> MEL\n" +
					"PNR: X4J9QT\n" +
					"Departs: 9:35 AM\n" +
					"Arrives: 11:05 AM\n"
			})

			It("extracts the flight number", func() {
				Expect(meta.Str("flight_number")).To(Equal("QF410"))
			})

			It("extracts the PNR", func() {
				Expect(meta.Str("pnr")).To(Equal("X4J9QT"))
			})

			It("extracts the route", func() {
				Expect(meta.Str("departure_airport")).To(Equal("SYD"))
				Expect(meta.Str("arrival_airport")).To(Equal("MEL"))
			})

			It("extracts the times", func() {
				Expect(meta.Str("departure_time")).To(Equal("9:35 AM"))
				Expect(meta.Str("arrival_time")).To(Equal("11:05 AM"))
			})

			It("matches the airline against the known list", func() {
				Expect(meta.Str("airline")).To(Equal("Qantas"))
			})
		})

		When("only the filename carries the route", func() {
			BeforeEach(func() {
				filename = "QF410_SYD-MEL.pdf"
				text = "e-ticket attached"
			})

			It("falls back to the filename for the route", func() {
				Expect(meta.Str("departure_airport")).To(Equal("SYD"))
				Expect(meta.Str("arrival_airport")).To(Equal("MEL"))
			})

			It("falls back to the filename for the flight number", func() {
				Expect(meta.Str("flight_number")).To(Equal("QF410"))
			})
		})

		When("the airline has an explicit label", func() {
			BeforeEach(func() {
				text = "Airline: Jetstar Airways\nGate 12"
			})

			It("prefers the labeled value", func() {
				Expect(meta.Str("airline")).To(Equal("Jetstar Airways"))
			})
		})

		When("the text has no flight details", func() {
			BeforeEach(func() {
				text = "nothing useful"
			})

			It("omits every field", func() {
				Expect(meta).To(BeEmpty())
			})
		})
	})

	Describe("hotels", func() {
		BeforeEach(func() {
			category = CategoryHotels
		})

		When("the hotel details are labeled", func() {
			BeforeEach(func() {
				text = "Hotel: Hilton Melbourne\n" +
					"Check-in: 15/04/2026\n" +
					"Check-out: 18 April 2026\n"
			})

			It("extracts the hotel name", func() {
				Expect(meta.Str("hotel_name")).To(Equal("Hilton Melbourne"))
			})

			It("extracts the stay dates", func() {
				Expect(meta.Str("check_in")).To(Equal("15/04/2026"))
				Expect(meta.Str("check_out")).To(Equal("18 April 2026"))
			})
		})

		When("the hotel name is a line heading", func() {
			BeforeEach(func() {
				text = "Grand Pacific Resort"
			})

			It("extracts it from the heading shape", func() {
				Expect(meta.Str("hotel_name")).To(Equal("Grand Pacific Resort"))
			})
		})
	})

	Describe("car rental", func() {
		BeforeEach(func() {
			category = CategoryCarRental
			text = "Pick-up: Melbourne Airport\n" +
				"Drop-off: Sydney Downtown\n" +
				"Vehicle: Toyota Corolla or similar\n" +
				"Pick-up time: 10:30 AM\n" +
				"Booking reference: ABC-1234\n"
		})

		It("extracts the locations", func() {
			Expect(meta.Str("pickup_location")).To(Equal("Melbourne Airport"))
			Expect(meta.Str("dropoff_location")).To(Equal("Sydney Downtown"))
		})

		It("extracts the vehicle", func() {
			Expect(meta.Str("vehicle")).To(Equal("Toyota Corolla or similar"))
		})

		It("extracts the pickup time", func() {
			Expect(meta.Str("pickup_time")).To(Equal("10:30 AM"))
		})

		It("extracts the booking reference", func() {
			Expect(meta.Str("booking_ref")).To(Equal("ABC-1234"))
		})
	})

	Describe("activities", func() {
		BeforeEach(func() {
			category = CategoryActivities
			text = "Sunset Kayak Tour\n" +
				"Starts: 5:30 PM\n" +
				"Ends: 8:00 PM\n" +
				"Location: Darling Harbour\n" +
				"Confirmation: ZX881234\n"
		})

		It("uses the first non-trivial line as the activity name", func() {
			Expect(meta.Str("activity_name")).To(Equal("Sunset Kayak Tour"))
		})

		It("extracts the times", func() {
			Expect(meta.Str("start_time")).To(Equal("5:30 PM"))
			Expect(meta.Str("end_time")).To(Equal("8:00 PM"))
		})

		It("extracts the location", func() {
			Expect(meta.Str("location")).To(Equal("Darling Harbour"))
		})

		It("extracts the booking reference", func() {
			Expect(meta.Str("booking_ref")).To(Equal("ZX881234"))
		})
	})

	Describe("misc", func() {
		BeforeEach(func() {
			category = CategoryMisc
			text = "Passenger: Jane Doe\nHotel: Hilton\nFlight QF1 2026-04-01"
		})

		It("carries only the passenger list", func() {
			Expect(meta).To(HaveLen(1))
			Expect(meta.Passengers()).To(Equal([]string{"Jane Doe"}))
		})
	})
})
