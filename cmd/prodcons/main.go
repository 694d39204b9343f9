package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/iamasit07/connect4-tcp/internal/prodcons"
)

func main() {
	seconds := flag.Int("seconds", 1, "how long to run")
	producers := flag.Int("producers", 1, fmt.Sprintf("number of producers (max %d)", prodcons.MaxProducers))
	consumers := flag.Int("consumers", 1, fmt.Sprintf("number of consumers (max %d)", prodcons.MaxConsumers))
	capacity := flag.Int("capacity", prodcons.DefaultCapacity, "buffer capacity")
	quiet := flag.Bool("q", false, "only print the totals")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [seconds producers consumers]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 3 {
		for i, dst := range []*int{seconds, producers, consumers} {
			n, err := strconv.Atoi(flag.Arg(i))
			if err != nil {
				log.Fatalf("invalid argument %q: %v", flag.Arg(i), err)
			}
			*dst = n
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(*seconds)*time.Second)
	defer cancel()

	var logf func(string, ...interface{})
	if !*quiet {
		logf = func(format string, args ...interface{}) {
			fmt.Printf(format+"\n", args...)
		}
	}

	buf := prodcons.NewBuffer(*capacity)
	stats, err := prodcons.Run(ctx, buf, *producers, *consumers, time.Now().UnixNano(), logf)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("produced %d, consumed %d, left in buffer %d\n", stats.Produced, stats.Consumed, buf.Len())
}
