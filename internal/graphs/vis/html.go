package vis

const html = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
      * { margin: 0; }
      body { background: #0F172A; }
      #network { width: 100vw; height: 100vh; }
    </style>
    <script type="text/javascript"
      src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
  </head>
  <body>
    <div id="network"></div>
    <script type="text/javascript">
const steps = {{.Steps}};
const delay = {{.StepDelay}};

const network = new vis.Network(
  document.getElementById("network"),
  { nodes: new vis.DataSet(), edges: new vis.DataSet() },
  {
    physics: { enabled: false },
    nodes: { shape: "dot", font: { color: "#E2E8F0" } },
    edges: { smooth: { type: "curvedCW", roundness: 0.15 } },
  },
);

function replay(i) {
  if (i >= steps.length) {
    return;
  }
  const step = steps[i];
  if (step.type === "node") {
    network.body.data.nodes.add(step.data);
  } else {
    network.body.data.edges.add(step.data);
  }
  setTimeout(() => replay(i + 1), delay);
}

replay(0);
    </script>
  </body>
</html>`
