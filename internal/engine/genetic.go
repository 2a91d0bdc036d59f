package engine

import (
	"context"
	"math/rand"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BoxFit/internal/model"
)

// GeneticConfig holds parameters for the order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 30,
		Generations:    60,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// chromosome is a candidate item order: a permutation of item indices.
type chromosome struct {
	order   []int
	fitness float64
	fitted  int
}

// geneticOptimizer searches for an item order that packs better under a
// fixed strategy. Every evaluation is an ordinary single-pass Pack.
type geneticOptimizer struct {
	packer    *Packer
	config    GeneticConfig
	container model.Container
	items     []model.Item
	rng       *rand.Rand
	logger    *log.Logger
}

// OptimizeOrder runs a genetic search over item orderings and returns the
// best packing found. The input order and the volume-descending order are
// always part of the initial population, so the result is never worse than
// either. The search is deterministic for a given seed. Cancelling ctx stops
// the search between generations and returns the best result so far along
// with ctx's error.
func OptimizeOrder(ctx context.Context, settings model.Settings, container model.Container, items []model.Item, config GeneticConfig) (model.PackingResult, error) {
	if err := validate(container, items); err != nil {
		return model.PackingResult{}, err
	}

	s := settings
	s.SortOrder = model.SortInput
	packer := New(s)
	if _, _, err := packer.resolve(); err != nil {
		return model.PackingResult{}, err
	}

	if len(items) < 2 {
		return packer.Pack(container, items)
	}

	g := &geneticOptimizer{
		packer:    packer,
		config:    normalizeConfig(config),
		container: container,
		items:     items,
		rng:       rand.New(rand.NewSource(config.Seed)),
		logger:    log.FromContext(ctx),
	}
	return g.optimize(ctx)
}

func normalizeConfig(c GeneticConfig) GeneticConfig {
	d := DefaultGeneticConfig()
	if c.PopulationSize < 2 {
		c.PopulationSize = d.PopulationSize
	}
	if c.Generations < 0 {
		c.Generations = 0
	}
	if c.TournamentSize < 1 {
		c.TournamentSize = d.TournamentSize
	}
	// At least one elite keeps the best order found so far.
	if c.EliteCount < 1 || c.EliteCount > c.PopulationSize {
		c.EliteCount = min(d.EliteCount, c.PopulationSize)
	}
	return c
}

func (g *geneticOptimizer) optimize(ctx context.Context) (model.PackingResult, error) {
	population := g.initPopulation()
	for i := range population {
		g.evaluate(&population[i])
	}

	var stopErr error
	for gen := 0; gen < g.config.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			stopErr = err
			break
		}

		sortByFitness(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		for i := 0; i < g.config.EliteCount && i < len(population); i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)
			g.evaluate(&child)
			newPop = append(newPop, child)
		}

		population = newPop
		g.logger.Debug("generation", "n", gen+1, "best_fitted", population[0].fitted,
			"best_utilization", population[0].fitness)
	}

	sortByFitness(population)
	result, err := g.decode(population[0])
	if err != nil {
		return model.PackingResult{}, err
	}
	return result, stopErr
}

// sortByFitness orders by fitted count, then utilization, both descending.
func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		if population[i].fitted != population[j].fitted {
			return population[i].fitted > population[j].fitted
		}
		return population[i].fitness > population[j].fitness
	})
}

// initPopulation seeds the input order and the volume-descending order,
// then fills the rest with random permutations.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.items)
	population := make([]chromosome, g.config.PopulationSize)

	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	population[0] = chromosome{order: identity}

	byVolume := slices.Clone(identity)
	sort.SliceStable(byVolume, func(i, j int) bool {
		return g.items[byVolume[i]].Volume() > g.items[byVolume[j]].Volume()
	})
	population[1] = chromosome{order: byVolume}

	for i := 2; i < len(population); i++ {
		population[i] = chromosome{order: g.rng.Perm(n)}
	}
	return population
}

func (g *geneticOptimizer) ordered(c chromosome) []model.Item {
	items := make([]model.Item, len(c.order))
	for i, idx := range c.order {
		items[i] = g.items[idx]
	}
	return items
}

func (g *geneticOptimizer) decode(c chromosome) (model.PackingResult, error) {
	return g.packer.Pack(g.container, g.ordered(c))
}

// evaluate packs the chromosome's order and records fitted count and
// utilization as fitness.
func (g *geneticOptimizer) evaluate(c *chromosome) {
	result, err := g.decode(*c)
	if err != nil {
		c.fitness, c.fitted = 0, 0
		return
	}
	c.fitness = result.Utilization()
	c.fitted = len(result.Fitted)
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitted > best.fitted ||
			(candidate.fitted == best.fitted && candidate.fitness > best.fitness) {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}

	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, idx := range parent2.order {
		if !inSegment[idx] {
			child.order[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies swap and inversion mutations.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	// Inversion is less frequent
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

func (g *geneticOptimizer) copyChromosome(c chromosome) chromosome {
	return chromosome{order: slices.Clone(c.order), fitness: c.fitness, fitted: c.fitted}
}
