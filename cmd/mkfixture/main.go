// mkfixture writes a Parquet file of synthetic user records for batch runs
// and demos. Records are sparse on purpose: each column is dropped with some
// probability so the mapper's defaults get exercised.
// Usage: go run ./cmd/mkfixture --out testdata/users.parquet --rows 500
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/healthrisk/internal/model"
	"github.com/gyeh/healthrisk/internal/normalize"
)

func main() {
	out := flag.String("out", "testdata/users.parquet", "output parquet")
	rows := flag.Int("rows", 500, "records to generate")
	seed := flag.Int64("seed", 1, "random seed")
	sparsity := flag.Float64("sparsity", 0.15, "probability a column is left empty")
	checkOnly := flag.String("check", "", "print column coverage of an existing file and exit")
	flag.Parse()

	if *checkOnly != "" {
		if err := check(*checkOnly); err != nil {
			fmt.Fprintf(os.Stderr, "check: %v\n", err)
			os.Exit(1)
		}
		return
	}

	g := &generator{rng: rand.New(rand.NewSource(*seed)), sparsity: *sparsity}
	records := make([]model.UserRecordRow, *rows)
	for i := range records {
		records[i] = g.record(i)
	}

	if err := goparquet.WriteFile(*out, records); err != nil {
		fmt.Fprintf(os.Stderr, "write parquet: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d records to %s\n", len(records), *out)
}

type generator struct {
	rng      *rand.Rand
	sparsity float64
}

func (g *generator) keep() bool {
	return g.rng.Float64() >= g.sparsity
}

func (g *generator) num(mean, sd, lo, hi float64) *float64 {
	if !g.keep() {
		return nil
	}
	v := normalize.Round2(min(max(g.rng.NormFloat64()*sd+mean, lo), hi))
	return &v
}

func (g *generator) pick(opts ...string) *string {
	if !g.keep() {
		return nil
	}
	v := opts[g.rng.Intn(len(opts))]
	return &v
}

func (g *generator) record(i int) model.UserRecordRow {
	r := model.UserRecordRow{
		RecordID: fmt.Sprintf("user-%05d", i+1),

		Age:    g.num(48, 15, 18, 90),
		Gender: g.pick("Male", "Female"),
		Height: g.num(170, 10, 140, 205),
		Weight: g.num(78, 16, 40, 180),

		SystolicBP:       g.num(128, 17, 90, 200),
		DiastolicBP:      g.num(82, 10, 55, 130),
		RestingHeartRate: g.num(72, 10, 45, 120),
		MaxHeartRate:     g.num(150, 20, 90, 200),

		Glucose:       g.num(105, 25, 60, 300),
		Cholesterol:   g.num(205, 40, 120, 380),
		LDL:           g.num(120, 30, 40, 250),
		HDL:           g.num(52, 12, 20, 100),
		Triglycerides: g.num(150, 60, 40, 500),
		Insulin:       g.num(85, 40, 2, 400),

		ChestPainType:         g.num(2, 1, 0, 3),
		ExerciseInducedAngina: g.pick("Yes", "No", "No", "No"),

		SmokingStatus:    g.pick("Never", "Former", "Current"),
		AlcoholIntake:    g.pick("None", "Moderate", "Heavy"),
		PhysicalActivity: g.pick("Low", "Moderate", "High"),
		SleepHours:       g.num(7, 1.2, 3, 11),
		StressLevel:      g.pick("Low", "Moderate", "High"),
		SaltIntake:       g.pick("Low", "Moderate", "High"),

		FamilyHistoryDiabetes:     g.pick("Yes", "No"),
		FamilyHistoryHypertension: g.pick("Yes", "No"),
		FamilyHistoryOverweight:   g.pick("yes", "no"),

		VegetableConsumptionFrequency: g.num(2, 0.6, 1, 3),
		NumMainMeals:                  g.num(3, 0.7, 1, 4),
		DailyWaterConsumption:         g.num(2, 0.6, 1, 3),
		FrequentHighCaloricFood:       g.pick("yes", "no"),
	}
	if r.Gender != nil && *r.Gender == "Female" {
		r.Pregnancies = g.num(2, 2, 0, 12)
	}
	if r.ChestPainType != nil {
		v := float64(int(*r.ChestPainType + 0.5))
		r.ChestPainType = &v
	}
	return r
}

func check(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return err
	}
	pf, err := goparquet.OpenFile(f, stat.Size())
	if err != nil {
		return err
	}
	reader := goparquet.NewGenericReader[model.UserRecordRow](pf)
	defer reader.Close()

	counts := make(map[string]int)
	total := 0
	buf := make([]model.UserRecordRow, 512)
	for {
		n, readErr := reader.Read(buf)
		for i := 0; i < n; i++ {
			total++
			for k := range buf[i].Record() {
				counts[k]++
			}
		}
		if readErr == io.EOF || n == 0 {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	fmt.Printf("Total: %d records\n", total)
	for _, col := range model.UserRecordColumns() {
		fmt.Printf("  %-32s %d\n", col, counts[col])
	}
	return nil
}
